// Package store управляет магазином привилегий за кредиты.
// models.go содержит каталог товаров.
package store

// Item — товар магазина.
type Item struct {
	Price       int64  // Цена в кредитах
	Description string // Что даёт покупка
}

// Items — фиксированный каталог магазина.
var Items = map[string]Item{
	"highlight_post": {Price: 150, Description: "Feature your post for 24 hours"},
	"profile_badge":  {Price: 200, Description: "Special profile badge for 30 days"},
	"custom_flair":   {Price: 350, Description: "Custom flair in server"},
	"ad_promotion":   {Price: 500, Description: "Promote in announcements"},
	"ping_role":      {Price: 200, Description: "Ping role in job posts"},
	"premium_tools":  {Price: 100, Description: "Access to premium tools for 7 days"},
}
