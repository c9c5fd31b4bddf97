package spreadsheet

// Reader выдаёт значение ячейки по координатам (строка, колонка), нумерация с единицы.
// Для объединённых диапазонов значащей считается только левая верхняя ячейка:
// запрос любой ячейки внутри диапазона возвращает её значение. Это правило
// обязано выполняться одинаково для обоих бэкендов (.xls и .xlsx/.xltx).
type Reader interface {
	Cell(row, col int) (string, error)
}
