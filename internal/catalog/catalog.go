// Package catalog holds the static restaurant roster and the inspiration
// tiles. The roster is embedded verbatim in the bid-generation prompt; the
// tiles seed the request form.
package catalog

// Agent is a restaurant persona that can bid on an order.
type Agent struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Voice        string `json:"voice"`
	Moat         string `json:"moat"`
	Pricing      string `json:"pricing"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Specialty    string `json:"specialty,omitempty"`
}

// Inspiration is a browsable category tile that pre-fills the item preference.
type Inspiration struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Pref  string `json:"pref"`
}

// Tier1Agents are the national chains.
var Tier1Agents = []Agent{
	{Name: "McDonald's", Category: "Burgers", Voice: "Hype, fast, legendary", Moat: "Unbeatable speed", Pricing: "Value"},
	{Name: "Starbucks", Category: "Morning Fuel", Voice: "Chill, premium, custom", Moat: "Caffeine & Vibes", Pricing: "Moderate"},
	{Name: "Chick-fil-A", Category: "Chicken", Voice: "Polite but competitive", Moat: "The Quality Standard", Pricing: "Moderate"},
	{Name: "Taco Bell", Category: "Late Night", Voice: "Wild, bold, Live Mas", Moat: "Crave-able deals", Pricing: "Value"},
	{Name: "Wendy's", Category: "Burgers", Voice: "Sassy, savage, fresh", Moat: "The Baconator", Pricing: "Value"},
	{Name: "Burger King", Category: "Burgers", Voice: "King energy, flame-grilled", Moat: "Flame flavor", Pricing: "Value"},
	{Name: "Dunkin'", Category: "BOS Fuel", Voice: "Local legend, straight talk", Moat: "Boston Ubiquity", Pricing: "Value"},
	{Name: "Subway", Category: "Fresh Subs", Voice: "Healthy & Customizable", Moat: "Eat Fresh", Pricing: "Value"},
	{Name: "Domino's", Category: "Pizza Tech", Voice: "Delivery masterminds", Moat: "30-min flex", Pricing: "Value"},
	{Name: "Chipotle", Category: "BOS Burritos", Voice: "Macro-focused, clean", Moat: "Protein Powerhouse", Pricing: "Moderate"},
}

// BostonAgents are the local independents.
var BostonAgents = []Agent{
	{Name: "Legal Sea Foods", Category: "Seafood", Neighborhood: "Seaport", Specialty: "Clam Chowder", Pricing: "Premium", Voice: "Classy & Classic", Moat: "Market Fresh"},
	{Name: "Neptune Oyster", Category: "Oysters", Neighborhood: "North End", Specialty: "Lobster Rolls", Pricing: "High", Voice: "Elite Tier", Moat: "Culinary Icon"},
	{Name: "Regina Pizzeria", Category: "Pizza", Neighborhood: "North End", Specialty: "Brick Oven", Pricing: "Moderate", Voice: "OG Boston Pizzeria", Moat: "The Real Deal"},
	{Name: "Tasty Burger", Category: "Burgers", Neighborhood: "Fenway", Specialty: "The Big Tasty", Pricing: "Value", Voice: "Ballpark Energy", Moat: "Fenway Original"},
	{Name: "Anna's Taqueria", Category: "Mexican", Neighborhood: "Brookline", Specialty: "Super Burrito", Pricing: "Value", Voice: "Fast & Massive", Moat: "The Burrito Heavyweight"},
	{Name: "Flour Bakery", Category: "Cafe", Neighborhood: "South End", Specialty: "Sandwiches", Pricing: "Moderate", Voice: "Sweet & Savory", Moat: "Chef Joanne Chang"},
}

// AllAgents returns the full roster in prompt order: national chains first.
func AllAgents() []Agent {
	out := make([]Agent, 0, len(Tier1Agents)+len(BostonAgents))
	out = append(out, Tier1Agents...)
	out = append(out, BostonAgents...)
	return out
}

// Inspirations are the browse tiles shown on the landing screen.
var Inspirations = []Inspiration{
	{ID: "pizza", Title: "Pizza", Pref: "Extra Cheesy Pepperoni Pizza"},
	{ID: "burger", Title: "Burgers", Pref: "Juicy Smash Burger"},
	{ID: "sushi", Title: "Sushi", Pref: "Fresh Sushi Platter"},
	{ID: "tacos", Title: "Tacos", Pref: "Street Tacos al Pastor"},
	{ID: "pasta", Title: "Pasta", Pref: "Creamy Fettuccine Alfredo"},
	{ID: "lobster", Title: "Lobster", Pref: "Warm Butter Lobster Roll"},
	{ID: "ramen", Title: "Ramen", Pref: "Spicy Tonkotsu Ramen"},
	{ID: "wings", Title: "Wings", Pref: "Buffalo Chicken Wings"},
	{ID: "salad", Title: "Salads", Pref: "Crunchy Caesar Salad"},
	{ID: "poke", Title: "Poke", Pref: "Fresh Ahi Tuna Poke Bowl"},
	{ID: "burrito", Title: "Burritos", Pref: "Giant Mission Burrito"},
	{ID: "steak", Title: "Steak", Pref: "Ribeye Steak & Fries"},
	{ID: "coffee", Title: "Coffee", Pref: "Iced Oat Milk Latte"},
	{ID: "donuts", Title: "Donuts", Pref: "Glazed Donuts Dozen"},
	{ID: "icecream", Title: "Ice Cream", Pref: "Three Scoop Sundae"},
	{ID: "thai", Title: "Thai", Pref: "Pad Thai Shrimp"},
	{ID: "dimsum", Title: "Dim Sum", Pref: "Steamed Dumplings"},
	{ID: "bbq", Title: "BBQ", Pref: "Smoked Beef Brisket"},
	{ID: "sandwich", Title: "Subs", Pref: "Italian Sub Sandwich"},
	{ID: "smoothie", Title: "Smoothies", Pref: "Tropical Fruit Smoothie"},
	{ID: "bagels", Title: "Bagels", Pref: "Everything Bagel with Lox"},
	{ID: "pho", Title: "Pho", Pref: "Beef Pho Noodle Soup"},
	{ID: "friedchicken", Title: "Fried Chicken", Pref: "Crispy Fried Chicken Bucket"},
	{ID: "indian", Title: "Indian", Pref: "Butter Chicken & Naan"},
	{ID: "gyro", Title: "Gyros", Pref: "Lamb Gyro Wrap"},
	{ID: "kbbq", Title: "K-BBQ", Pref: "Korean BBQ Ribs"},
	{ID: "pancakes", Title: "Pancakes", Pref: "Blueberry Pancakes"},
	{ID: "acai", Title: "Acai", Pref: "Acai Superfood Bowl"},
	{ID: "oysters", Title: "Oysters", Pref: "Fresh Local Oysters"},
	{ID: "hotdogs", Title: "Hot Dogs", Pref: "Loaded Hot Dogs"},
}
