package domain

// SettingKey - типизированный ключ настройки
// Набор ключей фиксирован; значения хранятся строками, парсинг выполняет
// usecase-слой с fallback на значение по умолчанию при отсутствии ключа
type SettingKey string

const (
	// SettingGasolinePrice - последняя известная цена бензина (за литр)
	SettingGasolinePrice SettingKey = "current_gasoline_price"

	// SettingDieselPrice - последняя известная цена дизельного топлива (за литр)
	SettingDieselPrice SettingKey = "current_diesel_price"

	// SettingManualFuelPrice - ручная цена топлива; если задана и непуста,
	// безусловно перекрывает живую цену для ЛЮБОГО типа топлива
	SettingManualFuelPrice SettingKey = "manual_fuel_price"

	// SettingLastPriceUpdate - время последнего успешного обновления цен
	SettingLastPriceUpdate SettingKey = "last_price_update_timestamp"
)

// KnownSettingKeys - все ключи, которые система умеет хранить
var KnownSettingKeys = []SettingKey{
	SettingGasolinePrice,
	SettingDieselPrice,
	SettingManualFuelPrice,
	SettingLastPriceUpdate,
}

// IsKnownSettingKey проверяет, входит ли ключ в фиксированный набор
func IsKnownSettingKey(key SettingKey) bool {
	for _, k := range KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
