package config

// DefaultTransferCities is the built-in transfer candidate list, used when no
// YAML file overrides it. Order matters only for stable ranking ties; the
// planner never discovers transfer points outside this list.
var DefaultTransferCities = []string{
	"Москва", "Санкт-Петербург", "Нижний Новгород", "Воронеж", "Петрозаводск", "Мурманск",
	"Архангельск", "Казань", "Самара", "Уфа", "Саратов", "Ростов-на-Дону", "Краснодар",
	"Минеральные Воды", "Волгоград", "Екатеринбург", "Челябинск", "Пермь", "Тюмень",
	"Новосибирск", "Омск", "Красноярск", "Томск", "Иркутск", "Улан-Удэ", "Хабаровск",
	"Владивосток", "Якутск", "Чита", "Магадан",
}
