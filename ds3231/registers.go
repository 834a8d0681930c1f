package ds3231

const (
	Address     = 0x68 // I2C address for DS3231
	Time        = 0x00 // Time registers starting with seconds
	Alarm1      = 0x07 // Alarm 1 registers starting with seconds
	Alarm2      = 0x0B // Alarm 2 registers starting with minutes
	Control     = 0x0E // Control register
	Status      = 0x0F // Control/status register
	AgingOffset = 0x10 // Aging offset register
	TempMSB     = 0x11 // Temperature, integer part (two's complement)
	TempLSB     = 0x12 // Temperature, fractional part in bits 7:6
)

// control register bits
const (
	controlA1IE  = 1 << 0
	controlA2IE  = 1 << 1
	controlINTCN = 1 << 2
	controlRS    = 0b11 << 3
	controlCONV  = 1 << 5
	controlBBSQW = 1 << 6
	controlEOSC  = 1 << 7
)

// status register bits
const (
	statusA1F     = 1 << 0
	statusA2F     = 1 << 1
	statusBSY     = 1 << 2
	statusEN32kHz = 1 << 3
	statusOSF     = 1 << 7
)

// alarm register fields
const (
	alarmMaskBit = 0b1000_0000
	hour12Bit    = 0b0100_0000
	hourPMBit    = 0b0010_0000
	dayOfWeekBit = 0b0100_0000
)
