package handler

import "fmt"

const (
	startText = "Location bot, базовый вариант. Добавление мест в 2 этапа - название, потом геолокация.\n" +
		"/help  - напечатать подсказки\n"

	helpText = "/start - начать работу\n" +
		"/add – добавление нового места\n" +
		"Для ввода местоположения на смартфоне нужно\nнажать вложение к сообщению,\n" +
		"далее Геопозиция и выбор конкретного места на карте\n" +
		"/list – отображение добавленных мест\n" +
		"/reset позволяет пользователю удалить все его добавленные локации(помним про GDPR)\n\n"

	askTitleText        = "Введите название места:"
	badTitleText        = "Название не должно содержать «&#94». Введите название места:"
	invalidLocationText = "Невалидные координаты. Введите координаты места:"
	resetDoneText       = "Все Ваши локации удалены!"
	noPlacesText        = "Добавленных мест нет!"
	lastPlaceText       = "Последнее место:"
	unavailableText     = "Сервис временно недоступен. Попробуйте позже."
)

func askLocationText(title string) string {
	return fmt.Sprintf("Введите координаты места %s", title)
}

func placeAddedText(display string) string {
	return fmt.Sprintf("%s добавлено!", display)
}

func addressText(address string) string {
	return fmt.Sprintf("Адрес: %s", address)
}

func stateText(label string) string {
	return fmt.Sprintf("Cостояние бота в общении с Вами: %s\n", label)
}

func placesCountText(n int) string {
	return fmt.Sprintf("Сохранено мест: %d\n", n)
}

func unknownCommandText(text string) string {
	return fmt.Sprintf("Неизвестная команда %s", text)
}

// listHeader returns the /list heading for n entries
func listHeader(n int) string {
	switch {
	case n == 0:
		return noPlacesText
	case n == 1:
		return lastPlaceText
	case n <= 4:
		return fmt.Sprintf("Последние %d места:", n)
	default:
		return fmt.Sprintf("Последние %d мест:", n)
	}
}
