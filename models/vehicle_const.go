package models

// VehicleStatus состояние транспортного средства
type VehicleStatus string

const (
	VehicleStatusActive    VehicleStatus = "ACTIVE"
	VehicleStatusInService VehicleStatus = "IN_SERVICE"
	VehicleStatusRetired   VehicleStatus = "RETIRED"
)

var vehicleStatusHumanName = map[VehicleStatus]string{
	VehicleStatusActive:    "В эксплуатации",
	VehicleStatusInService: "На обслуживании",
	VehicleStatusRetired:   "Списано",
}

func (s VehicleStatus) ToHuman() string {
	if human, exist := vehicleStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s VehicleStatus) IsValid() bool {
	_, exist := vehicleStatusHumanName[s]
	return exist
}
