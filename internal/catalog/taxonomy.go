package catalog

// DefaultTaxonomy is the flavor taxonomy used when no rules file overrides it.
func DefaultTaxonomy() []TaxonomyEntry {
	return []TaxonomyEntry{
		{"❄️ Лёд", []string{"ЛЕД", "ЛЁД", "АЙС", "ICE", "ХОЛОД", "МОРОЖ", "ICED", "ХОЛОДНАЯ", "СВЕЖАЯ"}},
		{"🍭 Сладкий", []string{"СЛАДК", "СГУЩ", "ГЕМАТОГЕН", "Скитлс", "Ананас", "Манго", "Земляника",
			"Арбуз", "Дыня", "Малин", "Виногр", "Клубника", "Драгонфрут", "Гуава",
			"Мандарин", "Сакур", "Баблгам", "Зефир", "Личи", "Нектарин", "Мангостин",
			"Груша", "Мультифрукт", "Чупа чупс", "Сладкая Мята", "Сладкий Драгонфрут",
			"Сладкий Виноград", "Сладкий Молочно-Карамельный Попкорн"}},
		{"🍋 Кислый", []string{"КИСЛ", "Киви", "Лимон", "Лайм", "Клюква", "Бергамот", "брусника", "Кислая Малина"}},
		{"🍊🍋 Кисло-сладкий", []string{"Маракуйя", "Гранат", "Черника", "Ежевика", "Морошка", "Помело",
			"Крыжовн", "Барбарис", "Смородина кислинка", "Персиковое желе с лимоном"}},
		{"🔄 Двойной", []string{"Двойн"}},
		{"🍯 Медовый", []string{"мед", "мёд"}},
		{"🍦 Мороженое", []string{"Мороженое", "Банановое Мороженое"}},
		{"🍵 Чай", []string{"ЧАЙ", "Зеленый Чай Лемонграсс", "Молочный Чай"}},
		{"🥛 Йогурт", []string{"ЙОГУРТ", "Йогуртовый десерт из манго", "Вишневый йогурт", "Сладкий малиновый йогурт",
			"Йогурт с Ягодами", "Йогурт из Кумквата и Маракуйи"}},
		{"🍹 Микс", []string{"МИКС", "ISTERIKA MIX", "Смесь африканских фруктов из холодильника",
			"Blackcurrant Raspberry Grape Candy's", "Cherry Peach Lemonade"}},
		{"🧸 Мишки", []string{"Мишки", "Gummy Bears Strawberry Kiwi"}},
		{"🥤 Газировка", []string{"ГАЗИР", "АЙРЕН", "ПУНШ", "кола", "Лимонад", "Мохито", "Тархун",
			"Сода", "Швепс", "Фанта", "Лаймовая газировка", "Вишневая газировка"}},
		{"🍬 Мармелад", []string{"МАРМЕЛ", "Green Gummy"}},
		{"🍬 Жвачка", []string{"ЖВАЧКА", "Crazy 8"}},
		{"🍬 Скитлс", []string{"Скитлс", "Фруктовый Скитлс"}},
		{"🍹 Напитки", []string{"Компот", "Коктейль", "Пина Колада", "Лимонад", "Ред Булл", "Фрэш",
			"Смородиновый коктейль с клубникой"}},
		{"🥐 Выпечка", []string{"Чизкейк", "Пиро", "Заварной крем"}},
		{"⚡ Энергетик", []string{"Ред Булл", "Энергет", "адреналин раш", "Лайм энергетик кола", "Cranberry energy",
			"Energy Berry", "Виноградный адреналин раш"}},
		{"🍓 Фруктовый", []string{"Банан", "Персик", "Кокос", "Яблоко", "Киви", "Манго", "Апельсин", "Грейпфрут",
			"Дыня", "Лайм", "Драгонфрут", "Гуава", "Мандарин", "Кактус", "Личи",
			"Нектарин", "Мангостин", "Груша", "Мультифрукт", "фрукт", "Спелый Манго",
			"Спелая черника", "Свежеспелый Банан", "Персиковый Сок", "Шелковица"}},
		{"🍓 Ягода", []string{"Смородин", "Вишн", "Земляни", "Черни", "Арбуз", "Малин", "Виногр",
			"Клубни", "Ягод", "Гранат", "Ежеви", "Клюкв", "Морошка", "Крыжовн",
			"Барбарис", "брусни", "Красная вишня", "Дикая вишня", "Садовая малина"}},
		{"🍊 Цитрус", []string{"Апельсин", "Грейпфрут", "Лимон", "Лайм", "Мандарин", "Лемонграсс",
			"Помело", "Мультифрукт"}},
		{"🏝️ Тропический", []string{"Кокос", "Ананас", "Киви", "Манго", "Маракуйя", "Драгонфрут", "Гуава",
			"Мангостин", "Мультифрукт", "Тропический Манго"}},
		{"🌿 Травянистый", []string{"Алоэ", "Мят", "Лемонграсс", "Базилик", "хво"}},
		{"🌱 Освежающий", []string{"Алоэ", "Мята", "Ментол", "Кактус", "Огурец", "Холлс"}},
		{"🌴 Экзотический", []string{"Алоэ", "Драгонфрут", "Гуава", "Сакура", "Экзот"}},
		{"🌲 Лесной", []string{"Лесн", "брусника", "хво", "Лесные Ягоды"}},
		{"🌸 Цветочный", []string{"Сакур", "Бергам", "Holy Grail"}},
		{"🍰 Десертный", []string{"Баблгам", "Зефир", "десерт", "Клубничный Смузи", "Черничный Пудинг"}},
		{"🌿 Мятный", []string{"Ментол", "Мят", "Холлс"}},
		{"🌶️ Пряный", []string{"Базилик", "Бергамот", "хво"}},
		{"🥒 Овощной", []string{"Огурец"}},
		{"🐍 Червячки", []string{"Черв", "Червячки"}},
		{"🧩 Другое", []string{"джем", "варенье", "желе", "Смесь", "Самоубийца"}},
	}
}
