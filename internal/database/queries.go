package database

// Migration bookkeeping
const (
	createMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	recordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)

// User queries
const (
	GetUserByMobileSQL = `
		SELECT id::text, name, mobile, COALESCE(address, '')
		FROM users WHERE mobile = $1`

	InsertUserSQL = `
		INSERT INTO users (name, mobile, address)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id::text`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, user_id, order_type, status, branch_name, items, total_amount,
			guests, time_slot, scheduled_at, delivery_address, payment_method, meta)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::numeric, $8, NULLIF($9, ''), $10::timestamptz,
			NULLIF($11, ''), $12, $13::jsonb)`

	ListOrdersByUserSQL = `
		SELECT id::text, user_id::text, order_type, status, COALESCE(branch_name, ''),
			items::text, total_amount::text, guests, COALESCE(time_slot, ''),
			COALESCE(delivery_address, ''), COALESCE(payment_method, ''),
			scheduled_at, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`
)
