package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   Amount
	}{
		{"nothing selected charges the minimum fee", Config{}, 5},
		{"type alone does not change the price", Config{ServerType: Community}, 5},
		{"bot", Config{WithBot: true}, 10},
		{"managed bot adds to the bot", Config{WithBot: true, BotManaged: true}, 25},
		{"boost help", Config{BoostHelp: true}, 5},
		{"promo", Config{Promo: true}, 8},
		{"bot and promo", Config{WithBot: true, Promo: true}, 18},
		{"everything", Config{WithBot: true, BotManaged: true, BoostHelp: true, Promo: true}, 38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Total(tt.config))
		})
	}
}

func TestTotal_NeverZero(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		var c Config
		for i, f := range Fields {
			if mask&(1<<i) != 0 {
				c.Set(f, true)
			}
		}
		assert.Positive(t, int(Total(c)), "config %+v", c)
	}
}

func TestBreakdown(t *testing.T) {
	lines := Breakdown(Config{WithBot: true, BotManaged: true, Promo: true})
	assert.Equal(t, []Line{
		{Field: WithBot, Amount: 10},
		{Field: BotManaged, Amount: 15},
		{Field: Promo, Amount: 8},
	}, lines)

	assert.Empty(t, Breakdown(Config{ServerType: Other}))
}
