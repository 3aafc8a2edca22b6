package order

// Amount is a price in whole currency units.
type Amount int

// Option surcharges and the minimum service fee.
const (
	WithBotFee    Amount = 10
	BotManagedFee Amount = 15
	BoostHelpFee  Amount = 5
	PromoFee      Amount = 8

	// MinimumFee is charged when no option is selected.
	MinimumFee Amount = 5
)

// Fee returns the surcharge of an option.
func (f Field) Fee() Amount {
	switch f {
	case WithBot:
		return WithBotFee
	case BotManaged:
		return BotManagedFee
	case BoostHelp:
		return BoostHelpFee
	case Promo:
		return PromoFee
	}
	return 0
}

// Line is one priced option of a configuration.
type Line struct {
	Field  Field  `json:"field"`
	Amount Amount `json:"amount"`
}

// Breakdown lists the surcharges of the active options in pricing order.
// A managed bot is billed on top of the bot itself.
func Breakdown(c Config) []Line {
	var lines []Line
	for _, f := range Fields {
		if c.Get(f) {
			lines = append(lines, Line{Field: f, Amount: f.Fee()})
		}
	}
	return lines
}

// Total is the price of a configuration: the sum of its surcharges, or
// MinimumFee when that sum is zero.
func Total(c Config) Amount {
	var sum Amount
	for _, line := range Breakdown(c) {
		sum += line.Amount
	}
	if sum == 0 {
		return MinimumFee
	}
	return sum
}
