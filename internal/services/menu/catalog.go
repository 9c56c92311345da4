package menu

import (
	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

var categories = []models.MenuCategory{
	{ID: "1", Name: "Soups", Description: "Warm and comforting soups", Icon: "🍲"},
	{ID: "2", Name: "Starters", Description: "Appetizers and finger foods", Icon: "🥗"},
	{ID: "3", Name: "Main Course", Description: "Hearty main dishes", Icon: "🍛"},
	{ID: "4", Name: "Breads", Description: "Freshly baked breads", Icon: "🍞"},
	{ID: "5", Name: "Rice and Biryani", Description: "Fragrant rice dishes", Icon: "🍚"},
	{ID: "6", Name: "Rolls", Description: "Wraps and rolls", Icon: "🌯"},
}

var items = []models.MenuItem{
	dish("101", "Veg Manchow Soup", "A spicy, flavorful vegetable soup with crispy noodles.", 89, "https://images.unsplash.com/photo-1535923054316-5f75572def8c?w=400", "1", "Chinese", 4.3, "veg", false),
	dish("102", "Veg Sweet Corn Soup", "A creamy, comforting soup made with sweet corn and herbs.", 79, "https://images.unsplash.com/photo-1665594051407-7385d281ad76?w=400", "1", "Chinese", 4.4, "veg", false),
	dish("103", "Chicken Manchow Soup", "A hearty chicken soup with a spicy, tangy flavor.", 109, "https://images.unsplash.com/photo-1612966948332-81d747414a8f?w=400", "1", "Chinese", 4.5, "non-veg", false),
	dish("104", "Chicken Sweet Corn Soup", "A mild and nourishing soup with tender chicken and corn.", 99, "https://images.unsplash.com/photo-1665594051407-7385d281ad76?w=400", "1", "Chinese", 4.4, "non-veg", false),

	dish("201", "Paneer Tikka", "Grilled cubes of marinated paneer cooked in a tandoor.", 249, "https://images.unsplash.com/photo-1567188040759-fb8a883dc6d8?w=400", "2", "North Indian", 4.7, "veg", true),
	dish("202", "Chilli Paneer", "Crispy paneer tossed in a spicy Indo-Chinese sauce.", 229, "https://images.unsplash.com/photo-1650080892550-c3a9a3ed1345?w=400", "2", "Chinese", 4.6, "veg", false),
	dish("203", "Veg Manchurian", "Fried vegetable balls tossed in a tangy Manchurian sauce.", 209, "https://images.unsplash.com/photo-1628474476846-a6f5b5cfc2f4?w=400", "2", "Chinese", 4.5, "veg", false),
	dish("204", "Veg Spring Roll", "Crispy rolls filled with seasoned mixed vegetables.", 189, "https://images.unsplash.com/photo-1577859584099-38d38a4aacb5?w=400", "2", "Chinese", 4.4, "veg", true),
	dish("205", "Chicken Tikka", "Juicy marinated chicken pieces grilled to perfection.", 299, "https://images.unsplash.com/photo-1718421670841-19501b4a9e03?w=400", "2", "North Indian", 4.8, "non-veg", true),
	dish("206", "Chicken Malai Tikka", "Tender chicken in a creamy, mildly spiced marinade.", 319, "https://images.unsplash.com/photo-1753939844802-98d5e8a4ee48?w=400", "2", "North Indian", 4.7, "non-veg", false),
	dish("207", "Chicken Lollipop", "Deep-fried chicken wings coated in spicy batter.", 279, "https://images.unsplash.com/photo-1741390723048-81412cd557a8?w=400", "2", "Chinese", 4.6, "non-veg", false),
	dish("208", "Chilli Chicken", "Crispy chicken tossed in hot and tangy Chinese sauce.", 289, "https://images.unsplash.com/photo-1696340034876-6245523babfa?w=400", "2", "Chinese", 4.7, "non-veg", true),
	dish("209", "Chicken Seekh Kabab", "Spiced minced chicken grilled on skewers.", 309, "https://images.unsplash.com/photo-1749802585605-a459271b4358?w=400", "2", "North Indian", 4.8, "non-veg", false),
	dish("210", "Fish Tikka", "Soft fish cubes marinated with spices.", 349, "https://images.unsplash.com/photo-1581337205199-d8a6eb81a406?w=400", "2", "North Indian", 4.6, "non-veg", false),
	dish("211", "Chilli Fish", "Crispy fried fish tossed in spicy Chinese-style sauce.", 359, "https://images.unsplash.com/photo-1560855471-5d6ac07fed94?w=400", "2", "Chinese", 4.5, "non-veg", true),

	dish("301", "Butter Chicken", "Creamy tomato gravy with tender chicken pieces.", 329, "https://images.unsplash.com/photo-1707448829764-9474458021ed?w=400", "3", "North Indian", 4.9, "non-veg", true),
	dish("302", "Chicken Curry", "Traditional spiced chicken curry.", 299, "https://images.unsplash.com/photo-1707448829764-9474458021ed?w=400", "3", "North Indian", 4.6, "non-veg", false),
	dish("303", "Chicken Tikka Masala", "Grilled chicken tikka cooked in rich gravy.", 349, "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=400", "3", "North Indian", 4.8, "non-veg", true),
	dish("304", "Chicken Kolhapuri", "Fiery and flavorful chicken dish.", 339, "https://images.unsplash.com/photo-1728542575492-47e02eb3305c?w=400", "3", "North Indian", 4.7, "non-veg", false),
	dish("305", "Chicken Bhuna", "Chicken slow-cooked in thick masala.", 319, "https://images.unsplash.com/photo-1723169863726-fa6c9262c086?w=400", "3", "North Indian", 4.6, "non-veg", false),
	dish("306", "Mutton Rogan Josh", "Kashmiri-style mutton curry.", 449, "https://images.unsplash.com/photo-1659716307017-dc91342ec2b8?w=400", "3", "North Indian", 4.8, "non-veg", true),
	dish("307", "Mutton Masala", "Spicy curry with tender mutton.", 429, "https://images.unsplash.com/photo-1640542509430-f529fdfce835?w=400", "3", "North Indian", 4.7, "non-veg", false),
	dish("308", "Mutton Mughlai", "Creamy Mughlai-style curry.", 469, "https://images.unsplash.com/photo-1686998423980-ab223d183055?w=400", "3", "North Indian", 4.8, "non-veg", false),
	dish("309", "Mutton Saoji", "Nagpur-style spicy mutton curry.", 459, "https://images.unsplash.com/photo-1606843046080-45bf7a23c39f?w=400", "3", "North Indian", 4.9, "non-veg", true),
	dish("310", "Fish Tikka Masala", "Grilled fish in creamy masala.", 379, "https://images.unsplash.com/photo-1612426357506-8b66a851fbe6?w=400", "3", "North Indian", 4.6, "non-veg", false),
	dish("311", "Tawa Fish", "Pan-fried fish with spices.", 349, "https://images.unsplash.com/photo-1602022131768-033a8796e78d?w=400", "3", "North Indian", 4.5, "non-veg", false),
	dish("312", "Fish Curry", "Traditional spicy fish curry.", 359, "https://images.unsplash.com/photo-1682622110397-37f6e928f890?w=400", "3", "North Indian", 4.7, "non-veg", true),
	dish("313", "Paneer Butter Masala", "Paneer in buttery tomato gravy.", 269, "https://images.unsplash.com/photo-1701579231378-3726490a407b?w=400", "3", "North Indian", 4.8, "veg", true),
	dish("314", "Kadai Paneer", "Paneer cooked in kadai masala.", 259, "https://images.unsplash.com/photo-1589656613433-b06c8ea9a46b?w=400", "3", "North Indian", 4.6, "veg", false),
	dish("315", "Palak Paneer", "Paneer simmered in spinach gravy.", 249, "https://images.unsplash.com/photo-1589647363585-f4a7d3877b10?w=400", "3", "North Indian", 4.7, "veg", false),
	dish("316", "Veg Kofta", "Vegetable dumplings in brown gravy.", 239, "https://images.unsplash.com/photo-1708782340377-882559d544fb?w=400", "3", "North Indian", 4.5, "veg", false),
	dish("317", "Mix Veg", "Seasonal vegetables cooked in masala.", 219, "https://images.unsplash.com/photo-1637194502510-09d5a08e7535?w=400", "3", "North Indian", 4.4, "veg", true),
	dish("318", "Dal Tadka", "Yellow lentils tempered with ghee.", 179, "https://images.unsplash.com/photo-1624243037263-01bb87a0a0c7?w=400", "3", "North Indian", 4.6, "veg", false),
	dish("319", "Dal Makhani", "Creamy black lentils cooked slow.", 199, "https://images.unsplash.com/photo-1651779472865-9f4b7389b7b1?w=400", "3", "North Indian", 4.7, "veg", true),

	dish("401", "Tandoori Roti", "Whole wheat roti cooked in tandoor.", 25, "https://images.unsplash.com/photo-1653550027228-e3202a24ccc1?w=400", "4", "North Indian", 4.5, "veg", false),
	dish("402", "Butter Naan", "Soft naan brushed with butter.", 45, "https://images.unsplash.com/photo-1637471631117-ded3d248c468?w=400", "4", "North Indian", 4.7, "veg", false),
	dish("403", "Garlic Naan", "Naan infused with garlic.", 55, "https://images.unsplash.com/photo-1697155406014-04dc649b0953?w=400", "4", "North Indian", 4.8, "veg", true),
	dish("404", "Paratha", "Flaky layered flatbread.", 35, "https://images.unsplash.com/photo-1653550027228-e3202a24ccc1?w=400", "4", "North Indian", 4.4, "veg", false),
	dish("405", "Cheese Kulcha", "Kulcha stuffed with cheese.", 75, "https://images.unsplash.com/photo-1723473620176-8d26dc6314cf?w=400", "4", "North Indian", 4.6, "veg", false),

	dish("501", "Veg Biryani", "Rice cooked with spices and vegetables.", 229, "https://images.unsplash.com/photo-1505216980056-a7b7b1c6e000?w=400", "5", "North Indian", 4.6, "veg", true),
	dish("502", "Chicken Biryani", "Layered rice with tender chicken.", 289, "https://images.unsplash.com/photo-1697155406055-2db32d47ca07?w=400", "5", "North Indian", 4.8, "non-veg", true),
	dish("503", "Mutton Biryani", "Rice with juicy mutton and masala.", 389, "https://images.unsplash.com/photo-1691170979035-27e5ec943205?w=400", "5", "North Indian", 4.9, "non-veg", false),
	dish("504", "Veg Fried Rice", "Stir-fried rice with veggies.", 179, "https://images.unsplash.com/photo-1664717698774-84f62382613b?w=400", "5", "Chinese", 4.4, "veg", false),
	dish("505", "Chicken Fried Rice", "Indo-Chinese style fried rice.", 219, "https://images.unsplash.com/photo-1603133872878-684f208fb84b?w=400", "5", "Chinese", 4.5, "non-veg", true),

	dish("601", "Paneer Tikka Roll", "Wrap filled with grilled paneer.", 149, "https://images.unsplash.com/photo-1560340841-eefc7aa04432?w=400", "6", "North Indian", 4.6, "veg", true),
	dish("602", "Chicken Tikka Roll", "Rumali roti stuffed with chicken.", 169, "https://images.unsplash.com/photo-1719329466073-56fb768d7d44?w=400", "6", "North Indian", 4.7, "non-veg", false),
}

func dish(id, name, desc string, price int64, image, categoryID, cuisine string, rating float64, dietary string, deals bool) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        name,
		Description: desc,
		Price:       decimal.NewFromInt(price),
		Image:       image,
		CategoryID:  categoryID,
		Cuisine:     cuisine,
		Rating:      rating,
		Dietary:     dietary,
		HasDeals:    deals,
	}
}
