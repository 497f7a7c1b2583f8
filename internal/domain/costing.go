package domain

// Производные представления: результаты расчетов, никогда не сохраняются в БД

// CostComponents - декомпозиция стоимости километра
// FixedCostPerKm отражает распределение фиксированных годовых расходов
// по пробегу и НЕ входит в итоговую маржинальную стоимость
type CostComponents struct {
	FuelCostPerKm         float64 `json:"fuel_cost_per_km"`
	MaintenanceCostPerKm  float64 `json:"maintenance_cost_per_km"`
	ConsumableCostPerKm   float64 `json:"consumable_cost_per_km"`
	DepreciationCostPerKm float64 `json:"depreciation_cost_per_km"`
	FixedCostPerKm        float64 `json:"fixed_cost_per_km"`
}

// ConsumableCostDetail - вклад отдельной детали в стоимость километра
type ConsumableCostDetail struct {
	PartID     int64   `json:"part_id"`
	Name       string  `json:"name"`
	CostPerKm  float64 `json:"cost_per_km"`
	TotalCost  float64 `json:"total_cost"`
	LifetimeKm int64   `json:"lifetime_km"`
}

// CostParams - входные параметры, использованные при расчете
// Возвращаются вызывающей стороне для аудита и отладки
type CostParams struct {
	FuelPriceUsed        float64 `json:"fuel_price_used"`
	CurrentKm            int64   `json:"current_km"`
	AvgConsumptionL100Km float64 `json:"avg_consumption_l_100km"`
}

// CostBreakdown - полный результат расчета стоимости километра
type CostBreakdown struct {
	VehicleID      int64                  `json:"vehicle_id"`
	TotalCostPerKm float64                `json:"total_cost_per_km"`
	Breakdown      CostComponents         `json:"breakdown"`
	Consumables    []ConsumableCostDetail `json:"consumables"`
	Params         CostParams             `json:"params"`
}

// MaintenanceStatus - состояние периодического обслуживания автомобиля
// RemainingKm - точное знаковое расстояние (отрицательное = просрочено),
// ProgressPct - индикатор для UI, всегда в диапазоне [0, 100]
type MaintenanceStatus struct {
	VehicleID     int64   `json:"vehicle_id"`
	LastServiceKm int64   `json:"last_service_km"`
	IntervalKm    int64   `json:"interval_km"`
	NextDueKm     int64   `json:"next_due_km"`
	CurrentKm     int64   `json:"current_km"`
	RemainingKm   int64   `json:"remaining_km"`
	ProgressPct   float64 `json:"progress_pct"`
}

// Warning - предупреждение о близком исчерпании ресурса
// PartID == nil означает синтетическое предупреждение о периодическом
// обслуживании, а не о конкретной детали
type Warning struct {
	PartID          *int64 `json:"part_id"`
	PartName        string `json:"part_name"`
	RemainingLifeKm int64  `json:"remaining_life_km"`
	EndOfLifeKm     int64  `json:"end_of_life_km"`
	IsCritical      bool   `json:"is_critical"`
}
