package models

// User is a customer profile keyed by mobile number
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address,omitempty"`
}

// Booking is a dine-in table reservation held in the session until checkout
type Booking struct {
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	Guests      int    `json:"guests"`
	PickupDrop  bool   `json:"pickupDropEnabled"`
	VehicleType string `json:"vehicleType,omitempty"`
}
