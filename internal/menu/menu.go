// Package menu holds the compiled-in menu. It seeds the menu_items
// table and doubles as the storefront fallback before seeding runs.
package menu

// Item is one compiled-in menu entry. Price is a fixed two-decimal
// string in CAD.
type Item struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// Default returns the full menu in display order.
func Default() []Item {
	return defaultMenu
}

var defaultMenu = []Item{
	{Name: "Jerk Chicken, Rice & Peas", Description: "Perfectly seasoned grilled chicken", Price: "7.50", Category: "Lunch Special"},
	{Name: "Doubles", Description: "Curried chickpea flatbread", Price: "4.00", Category: "Lunch Special"},
	{Name: "Doubles: Make it Exclusive add Any Meat", Price: "11.50", Category: "Lunch Special"},

	{Name: "Curry Chicken", Price: "14.99", Category: "Roti Wraps"},
	{Name: "Vegetarian ROTI", Price: "14.99", Category: "Roti Wraps"},

	{Name: "Oxtail Dinner", Price: "22.50", Category: "Dinner"},
	{Name: "Curry Goat Dinner", Price: "22.50", Category: "Dinner"},
	{Name: "Suya Dinner (grilled beef tenderloin)", Price: "22.50", Category: "Dinner"},
	{Name: "Jerk Chicken Dinner", Price: "18.50", Category: "Dinner"},
	{Name: "Curry Chicken Dinner", Price: "18.50", Category: "Dinner"},
	{Name: "Pounded Yam (Fufu)", Description: "Served with any soup", Price: "18.50", Category: "Dinner"},
	{Name: "Fish Dinner", Price: "24.99", Category: "Dinner"},
	{Name: "Pasta Dinner", Description: "With meat, fish or veggies", Price: "18.50", Category: "Dinner"},
	{Name: "Shrimp Dinner", Price: "18.50", Category: "Dinner"},
	{Name: "Yam Porridge Dinner", Price: "18.50", Category: "Dinner"},
	{Name: "ROTI Dinner", Description: "Curry-Chicken, Jerk Chicken or Vegetable", Price: "18.50", Category: "Dinner"},
	{Name: "Plantain Poutine with Any Meat", Price: "18.50", Category: "Dinner"},

	{Name: "Coleslaw (Small)", Price: "4.99", Category: "Salad"},
	{Name: "Coleslaw (Large)", Price: "5.99", Category: "Salad"},

	{Name: "Egusi Soup", Price: "7.99", Category: "Soups of the Day"},
	{Name: "Chicken Curry", Price: "7.99", Category: "Soups of the Day"},
	{Name: "Okro Soup", Price: "7.99", Category: "Soups of the Day"},
	{Name: "Vegetable Soup (No Meat)", Price: "7.99", Category: "Soups of the Day"},
	{Name: "Goat Pepper Soup", Price: "24.99", Category: "Soups of the Day"},

	{Name: "Plantain chips", Price: "4.50", Category: "Side Orders"},
	{Name: "Small Pie", Price: "4.50", Category: "Side Orders"},
	{Name: "Large Pie", Price: "6.00", Category: "Side Orders"},
	{Name: "Rice", Price: "4.50", Category: "Side Orders"},
	{Name: "Curry Chicken (Side)", Price: "9.99", Category: "Side Orders"},
	{Name: "Jerk Chicken (Side)", Price: "7.50", Category: "Side Orders"},
	{Name: "(Festival) Fried dumplings", Price: "4.50", Category: "Side Orders"},
	{Name: "Fried Plantain", Price: "4.50", Category: "Side Orders"},
	{Name: "Plantain fries", Price: "5.00", Category: "Side Orders"},
	{Name: "Roti Skins", Price: "6.49", Category: "Side Orders"},
	{Name: "Moi-moi (Steamed Black Eye Bean Pudding)", Price: "5.00", Category: "Side Orders"},
	{Name: "Assorted Meat", Price: "24.99", Category: "Side Orders"},
	{Name: "Plantain Poutine", Price: "14.99", Category: "Side Orders"},
	{Name: "Fufu (1 wrap)", Price: "5.99", Category: "Side Orders"},

	{Name: "Hot sauce (2 oz)", Price: "2.00", Category: "Sauces"},

	{Name: "Peas & Fried Plantain", Description: "Roti, Wrap, or full meal", Price: "14.99", Category: "Vegetarian"},
	{Name: "Doubles with Rice & Grilled Vegetables", Price: "14.99", Category: "Vegetarian"},
	{Name: "Yam Porridge", Price: "14.99", Category: "Vegetarian"},

	{Name: "Assorted", Price: "4.99", Category: "Desserts"},

	{Name: "Pop", Price: "1.75", Category: "Beverages"},
	{Name: "Bottle water", Price: "1.50", Category: "Beverages"},
	{Name: "Bottle Soda drink", Price: "3.00", Category: "Beverages"},
	{Name: "Tea", Price: "1.95", Category: "Beverages"},
	{Name: "Coffee", Price: "1.95", Category: "Beverages"},
	{Name: "Sugar Cane Juice Freshly pressed", Price: "8.99", Category: "Beverages"},
	{Name: "Smoothie (Small)", Price: "5.99", Category: "Beverages"},
	{Name: "Smoothie (Large)", Price: "9.99", Category: "Beverages"},

	{Name: "Full Tray of Jerk Chicken", Description: "Serves a crowd", Price: "150.00", Category: "Catering Platters & Party Trays"},
	{Name: "1 Pan of Jollof Rice", Description: "Authentic West African rice", Price: "120.00", Category: "Catering Platters & Party Trays"},
	{Name: "1 Pan of Rice and Peas", Description: "Traditional Caribbean side", Price: "150.00", Category: "Catering Platters & Party Trays"},
	{Name: "1/2 Pan Assorted Meat", Description: "Mix of our best meats", Price: "150.00", Category: "Catering Platters & Party Trays"},
	{Name: "Stew", Description: "2 liters", Price: "50.00", Category: "Catering Platters & Party Trays"},
	{Name: "Goat Pepper Soup (Catering)", Description: "30 Oz", Price: "25.00", Category: "Catering Platters & Party Trays"},
}
