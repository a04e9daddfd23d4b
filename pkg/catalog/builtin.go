package catalog

var builtinAliases = map[string]string{
	"plumbing":      "home_services",
	"hvac":          "home_services",
	"electrician":   "home_services",
	"roofing":       "home_services",
	"cleaning":      "home_services",
	"locksmith":     "home_services",
	"home_service":  "home_services",
	"lawyer":        "legal",
	"attorney":      "legal",
	"law":           "legal",
	"dental":        "medical",
	"dentist":       "medical",
	"healthcare":    "medical",
	"clinic":        "medical",
	"hotel":         "travel",
	"hospitality":   "travel",
	"tourism":       "travel",
	"flights":       "travel",
	"retail":        "ecommerce",
	"shop":          "ecommerce",
	"e_commerce":    "ecommerce",
	"store":         "ecommerce",
	"auto":          "automotive",
	"car_repair":    "automotive",
	"realestate":    "real_estate",
	"property":      "real_estate",
	"restaurants":   "restaurant",
	"food":          "restaurant",
	"school":        "education",
	"courses":       "education",
	"training":      "education",
	"insurance":     "finance",
	"loans":         "finance",
	"banking":       "finance",
	"accounting":    "finance",
}

var builtinVerticals = map[string]Patterns{
	DefaultVertical: {
		Local: []string{
			"[seed] near me",
			"local [seed]",
			"[seed] in [city]",
			"[city] [seed]",
			"[seed] nearby",
			"[seed] open now",
		},
		Price: []string{
			"[seed] cost",
			"[seed] price",
			"cheap [seed]",
			"affordable [seed]",
			"[seed] prices",
			"[seed] deals",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"top rated [seed]",
			"[seed] reviews",
			"professional [seed]",
			"trusted [seed]",
		},
		Urgency: []string{
			"24/7 [seed]",
			"same day [seed]",
			"emergency [seed]",
			"[seed] today",
		},
		Service: []string{
			"[seed]",
			"[seed] services",
			"[seed] company",
			"[seed] experts",
			"[seed] online",
		},
		Transactional: []string{
			"buy [seed]",
			"book [seed]",
			"hire [seed]",
			"[seed] quote",
			"order [seed]",
			"call [seed]",
		},
		Filler: []string{
			"[seed] specialists",
			"[seed] providers",
			"[seed] solutions",
			"[seed] consultation",
			"[seed] options",
			"[seed] packages",
			"[seed] free estimate",
			"licensed [seed]",
			"certified [seed]",
			"reliable [seed]",
			"recommended [seed]",
			"[seed] near you",
			"[seed] available now",
			"find [seed]",
			"compare [seed]",
			"[seed] for small business",
			"how to choose [seed]",
			"what is the best [seed]",
		},
	},
	"home_services": {
		Local: []string{
			"[seed] near me",
			"local [seed]",
			"[seed] in [city]",
			"[city] [seed]",
			"[seed] nearby",
			"[seed] in my area",
			"[seed] open now",
		},
		Price: []string{
			"[seed] cost",
			"[seed] price",
			"[seed] rates",
			"cheap [seed]",
			"affordable [seed]",
			"[seed] estimate",
			"[seed] free quote",
		},
		Quality: []string{
			"best [seed]",
			"top rated [seed]",
			"licensed [seed]",
			"certified [seed]",
			"[seed] reviews",
			"reliable [seed]",
		},
		Urgency: []string{
			"emergency [seed]",
			"24/7 [seed]",
			"same day [seed]",
			"[seed] today",
			"urgent [seed]",
			"after hours [seed]",
		},
		Service: []string{
			"[seed]",
			"[seed] service",
			"[seed] repair",
			"[seed] installation",
			"[seed] company",
			"[seed] contractor",
			"residential [seed]",
			"commercial [seed]",
		},
		Transactional: []string{
			"call [seed]",
			"hire [seed]",
			"book [seed]",
			"[seed] appointment",
			"schedule [seed]",
			"[seed] quote",
		},
		Filler: []string{
			"[seed] maintenance",
			"[seed] inspection",
			"[seed] replacement",
			"[seed] specialists",
			"[seed] technician",
			"[seed] experts",
			"[seed] contractors",
			"[seed] services",
			"[seed] repair cost",
			"[seed] near you",
			"[seed] available now",
			"trusted [seed]",
			"professional [seed]",
			"insured [seed]",
			"family owned [seed]",
			"local [seed] company",
			"weekend [seed]",
			"[seed] free estimate",
			"how much does [seed] cost",
			"find [seed]",
		},
	},
	"legal": {
		Local: []string{
			"[seed] near me",
			"local [seed]",
			"[seed] in [city]",
			"[city] [seed]",
		},
		Price: []string{
			"[seed] fees",
			"[seed] cost",
			"affordable [seed]",
			"[seed] free consultation",
			"[seed] payment plans",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"experienced [seed]",
			"[seed] reviews",
			"award winning [seed]",
		},
		Urgency: []string{
			"[seed] available now",
			"24/7 [seed]",
			"emergency [seed]",
		},
		Service: []string{
			"[seed]",
			"[seed] services",
			"[seed] firm",
			"[seed] advice",
			"[seed] representation",
		},
		Transactional: []string{
			"hire [seed]",
			"call [seed]",
			"[seed] consultation",
			"book [seed] consultation",
		},
		Filler: []string{
			"[seed] specialists",
			"[seed] office",
			"[seed] help",
			"[seed] case review",
			"[seed] near you",
			"licensed [seed]",
			"trusted [seed]",
			"aggressive [seed]",
			"[seed] for small business",
			"how to find [seed]",
			"what does [seed] cost",
			"find [seed]",
		},
	},
	"medical": {
		Local: []string{
			"[seed] near me",
			"local [seed]",
			"[seed] in [city]",
			"[seed] clinic near me",
		},
		Price: []string{
			"[seed] cost",
			"affordable [seed]",
			"[seed] without insurance",
			"[seed] prices",
		},
		Quality: []string{
			"best [seed]",
			"top rated [seed]",
			"[seed] reviews",
			"board certified [seed]",
		},
		Urgency: []string{
			"same day [seed]",
			"emergency [seed]",
			"walk in [seed]",
			"[seed] open now",
		},
		Service: []string{
			"[seed]",
			"[seed] clinic",
			"[seed] treatment",
			"[seed] specialist",
			"[seed] office",
		},
		Transactional: []string{
			"book [seed] appointment",
			"schedule [seed]",
			"call [seed]",
			"[seed] appointment",
		},
		Filler: []string{
			"[seed] doctor",
			"[seed] center",
			"[seed] care",
			"[seed] services",
			"[seed] accepting new patients",
			"[seed] near you",
			"pediatric [seed]",
			"family [seed]",
			"gentle [seed]",
			"[seed] for kids",
			"[seed] consultation",
			"how to choose [seed]",
		},
	},
	"travel": {
		Local: []string{
			"[seed] near me",
			"[seed] in [city]",
			"[city] [seed]",
		},
		Price: []string{
			"cheap [seed]",
			"[seed] deals",
			"[seed] discounts",
			"last minute [seed]",
			"[seed] packages",
			"[seed] prices",
		},
		Quality: []string{
			"best [seed]",
			"luxury [seed]",
			"top [seed]",
			"[seed] reviews",
		},
		Urgency: []string{
			"last minute [seed] deals",
			"[seed] tonight",
			"[seed] this weekend",
		},
		Service: []string{
			"[seed]",
			"[seed] booking",
			"[seed] tours",
			"[seed] trips",
			"[seed] holidays",
		},
		Transactional: []string{
			"book [seed]",
			"reserve [seed]",
			"buy [seed] tickets",
			"[seed] online booking",
		},
		Filler: []string{
			"[seed] vacation",
			"[seed] getaway",
			"[seed] itinerary",
			"[seed] guide",
			"[seed] offers",
			"all inclusive [seed]",
			"family [seed]",
			"romantic [seed]",
			"[seed] for couples",
			"[seed] availability",
			"where to book [seed]",
			"when to book [seed] cheap",
		},
	},
	"ecommerce": {
		Local: []string{
			"[seed] near me",
			"[seed] store near me",
			"[seed] in [city]",
		},
		Price: []string{
			"cheap [seed]",
			"[seed] sale",
			"[seed] discount",
			"[seed] price",
			"[seed] deals",
			"[seed] coupon",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"[seed] reviews",
			"premium [seed]",
			"[seed] brands",
		},
		Urgency: []string{
			"[seed] free shipping",
			"[seed] next day delivery",
			"[seed] in stock",
		},
		Service: []string{
			"[seed]",
			"[seed] online",
			"[seed] shop",
			"[seed] store",
		},
		Transactional: []string{
			"buy [seed]",
			"order [seed]",
			"buy [seed] online",
			"[seed] for sale",
		},
		Filler: []string{
			"new [seed]",
			"[seed] collection",
			"[seed] outlet",
			"[seed] clearance",
			"[seed] gift",
			"[seed] bundle",
			"[seed] accessories",
			"[seed] comparison",
			"[seed] wholesale",
			"[seed] official site",
			"where to buy [seed]",
			"which [seed] to buy",
		},
	},
	"automotive": {
		Local: []string{
			"[seed] near me",
			"local [seed]",
			"[seed] in [city]",
			"[seed] shop near me",
		},
		Price: []string{
			"[seed] cost",
			"[seed] price",
			"cheap [seed]",
			"[seed] estimate",
		},
		Quality: []string{
			"best [seed]",
			"certified [seed]",
			"[seed] reviews",
			"dealer [seed]",
		},
		Urgency: []string{
			"same day [seed]",
			"emergency [seed]",
			"mobile [seed]",
			"24/7 [seed]",
		},
		Service: []string{
			"[seed]",
			"[seed] service",
			"[seed] repair",
			"[seed] shop",
		},
		Transactional: []string{
			"book [seed]",
			"schedule [seed]",
			"[seed] quote",
			"call [seed]",
		},
		Filler: []string{
			"[seed] specialists",
			"[seed] mechanic",
			"[seed] center",
			"[seed] garage",
			"[seed] parts",
			"[seed] replacement",
			"[seed] inspection",
			"[seed] coupons",
			"foreign [seed]",
			"[seed] near you",
			"how much is [seed]",
			"find [seed]",
		},
	},
	"real_estate": {
		Local: []string{
			"[seed] near me",
			"[seed] in [city]",
			"[city] [seed]",
			"local [seed]",
		},
		Price: []string{
			"[seed] fees",
			"[seed] commission",
			"affordable [seed]",
			"[seed] prices",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"[seed] reviews",
			"experienced [seed]",
		},
		Urgency: []string{
			"[seed] available now",
			"[seed] open house",
		},
		Service: []string{
			"[seed]",
			"[seed] agent",
			"[seed] listings",
			"[seed] agency",
		},
		Transactional: []string{
			"buy [seed]",
			"sell [seed]",
			"[seed] for sale",
			"contact [seed]",
		},
		Filler: []string{
			"[seed] market",
			"[seed] valuation",
			"[seed] broker",
			"[seed] investment",
			"new [seed]",
			"luxury [seed]",
			"[seed] near you",
			"[seed] consultation",
			"how to sell [seed] fast",
			"find [seed]",
		},
	},
	"restaurant": {
		Local: []string{
			"[seed] near me",
			"[seed] in [city]",
			"[seed] open now",
			"local [seed]",
		},
		Price: []string{
			"cheap [seed]",
			"[seed] specials",
			"[seed] deals",
			"[seed] menu prices",
		},
		Quality: []string{
			"best [seed]",
			"top rated [seed]",
			"[seed] reviews",
			"authentic [seed]",
		},
		Urgency: []string{
			"[seed] delivery",
			"late night [seed]",
			"[seed] open late",
		},
		Service: []string{
			"[seed]",
			"[seed] restaurant",
			"[seed] takeout",
			"[seed] catering",
		},
		Transactional: []string{
			"order [seed]",
			"order [seed] online",
			"book [seed] table",
			"[seed] reservations",
		},
		Filler: []string{
			"[seed] menu",
			"[seed] lunch",
			"[seed] dinner",
			"[seed] brunch",
			"[seed] buffet",
			"family [seed]",
			"[seed] near you",
			"[seed] for groups",
			"[seed] gift cards",
			"where to eat [seed]",
		},
	},
	"education": {
		Local: []string{
			"[seed] near me",
			"[seed] in [city]",
			"local [seed]",
		},
		Price: []string{
			"[seed] cost",
			"affordable [seed]",
			"free [seed]",
			"[seed] tuition",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"accredited [seed]",
			"[seed] reviews",
		},
		Urgency: []string{
			"[seed] starting now",
			"[seed] enroll today",
		},
		Service: []string{
			"[seed]",
			"[seed] online",
			"[seed] classes",
			"[seed] program",
			"[seed] course",
		},
		Transactional: []string{
			"enroll [seed]",
			"apply [seed] program",
			"[seed] registration",
			"book [seed] class",
		},
		Filler: []string{
			"[seed] certificate",
			"[seed] training",
			"[seed] tutor",
			"[seed] lessons",
			"[seed] for beginners",
			"advanced [seed]",
			"part time [seed]",
			"[seed] schedule",
			"[seed] near you",
			"how to learn [seed] fast",
		},
	},
	"finance": {
		Local: []string{
			"[seed] near me",
			"[seed] in [city]",
			"local [seed]",
		},
		Price: []string{
			"[seed] rates",
			"low cost [seed]",
			"[seed] fees",
			"affordable [seed]",
			"cheap [seed]",
		},
		Quality: []string{
			"best [seed]",
			"top [seed]",
			"trusted [seed]",
			"[seed] reviews",
		},
		Urgency: []string{
			"same day [seed]",
			"fast [seed]",
			"instant [seed]",
		},
		Service: []string{
			"[seed]",
			"[seed] services",
			"[seed] advisor",
			"[seed] company",
		},
		Transactional: []string{
			"apply for [seed]",
			"get [seed] quote",
			"compare [seed]",
			"[seed] online application",
		},
		Filler: []string{
			"[seed] calculator",
			"[seed] options",
			"[seed] plans",
			"[seed] providers",
			"[seed] specialists",
			"[seed] consultation",
			"online [seed]",
			"small business [seed]",
			"[seed] near you",
			"how to get [seed]",
		},
	},
}
