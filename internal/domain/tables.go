package domain

var Tables = []interface{}{
	// System
	&SysOprLog{},
	// Accounts
	&User{},
	&Car{},
	&CarPhoto{},
	// Shop
	&ProductCategory{},
	&Product{},
	&ProductVariant{},
	&Cart{},
	&CartItem{},
	&Order{},
	&OrderItem{},
	// Loyalty
	&PromoCode{},
	&BonusTransaction{},
	// Forum
	&ForumCategory{},
	&ForumTopic{},
	&ForumPost{},
	&ForumLike{},
	// Events
	&Event{},
	&EventRegistration{},
	&EventLike{},
}
