package types

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusBlocked     Status = "BLOCKED"
	StatusCharging    Status = "CHARGING"
	StatusInoperative Status = "INOPERATIVE"
	StatusOutOfOrder  Status = "OUTOFORDER"
	StatusPlanned     Status = "PLANNED"
	StatusRemoved     Status = "REMOVED"
	StatusReserved    Status = "RESERVED"
	StatusUnknown     Status = "UNKNOWN"
)

type ConnectorStandard string

const (
	StandardChademo       ConnectorStandard = "CHADEMO"
	StandardDomesticF     ConnectorStandard = "DOMESTIC_F"
	StandardType1         ConnectorStandard = "IEC_62196_T1"
	StandardType1Combo    ConnectorStandard = "IEC_62196_T1_COMBO"
	StandardType2         ConnectorStandard = "IEC_62196_T2"
	StandardType2Combo    ConnectorStandard = "IEC_62196_T2_COMBO"
	StandardType3A        ConnectorStandard = "IEC_62196_T3A"
	StandardType3C        ConnectorStandard = "IEC_62196_T3C"
	StandardTeslaS        ConnectorStandard = "TESLA_S"
	StandardPantographTop ConnectorStandard = "PANTOGRAPH_TOP_DOWN"
	StandardPantographBtm ConnectorStandard = "PANTOGRAPH_BOTTOM_UP"
)

type ConnectorFormat string

const (
	FormatSocket ConnectorFormat = "SOCKET"
	FormatCable  ConnectorFormat = "CABLE"
)

type PowerType string

const (
	PowerTypeAC1Phase PowerType = "AC_1_PHASE"
	PowerTypeAC3Phase PowerType = "AC_3_PHASE"
	PowerTypeDC       PowerType = "DC"
)

type Capability string

const (
	CapabilityRfidReader      Capability = "RFID_READER"
	CapabilityRemoteStartStop Capability = "REMOTE_START_STOP_CAPABLE"
	CapabilityReservable      Capability = "RESERVABLE"
	CapabilityCreditCard      Capability = "CREDIT_CARD_PAYABLE"
	CapabilityContactless     Capability = "CONTACTLESS_CARD_SUPPORT"
	CapabilityUnlock          Capability = "UNLOCK_CAPABLE"
)

type AuthMethod string

const (
	AuthMethodAuthRequest AuthMethod = "AUTH_REQUEST"
	AuthMethodWhitelist   AuthMethod = "WHITELIST"
)

type EnergySourceCategory string

const (
	EnergySourceNuclear       EnergySourceCategory = "NUCLEAR"
	EnergySourceGeneralFossil EnergySourceCategory = "GENERAL_FOSSIL"
	EnergySourceCoal          EnergySourceCategory = "COAL"
	EnergySourceGas           EnergySourceCategory = "GAS"
	EnergySourceGeneralGreen  EnergySourceCategory = "GENERAL_GREEN"
	EnergySourceSolar         EnergySourceCategory = "SOLAR"
	EnergySourceWind          EnergySourceCategory = "WIND"
	EnergySourceWater         EnergySourceCategory = "WATER"
)

type EnvironmentalImpactCategory string

const (
	ImpactNuclearWaste  EnvironmentalImpactCategory = "NUCLEAR_WASTE"
	ImpactCarbonDioxide EnvironmentalImpactCategory = "CARBON_DIOXIDE"
)

type CdrDimensionType string

const (
	DimensionEnergy      CdrDimensionType = "ENERGY"
	DimensionTime        CdrDimensionType = "TIME"
	DimensionParkingTime CdrDimensionType = "PARKING_TIME"
)
