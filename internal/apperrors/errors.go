package apperrors

import "errors"

// Сентинельные ошибки ядра. Оборачиваются через fmt.Errorf("...: %w", ...)
// и проверяются в обработчиках через errors.Is.
var (
	// ErrValidation - отсутствуют или некорректны обязательные входные данные
	ErrValidation = errors.New("неверные данные запроса")

	// ErrNotFound - запрошенный пост или пользователь не существует
	ErrNotFound = errors.New("не найдено")

	// ErrForbidden - вызывающий не владеет изменяемым ресурсом
	ErrForbidden = errors.New("доступ запрещен")

	// ErrInvalidCredential - проверка учетных данных не пройдена
	ErrInvalidCredential = errors.New("недействительные учетные данные")

	// ErrInfrastructure - БД или хранилище файлов недоступны, повтор на стороне вызывающего
	ErrInfrastructure = errors.New("ошибка инфраструктуры")
)
