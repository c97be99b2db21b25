package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndonesianCity(t *testing.T) {
	e := NewIndonesian()

	tests := []struct {
		name string
		raw  string
		city string
		ok   bool
	}{
		{"city with country", "Jakarta, Indonesia", "Jakarta", true},
		{"administrative prefix", "Kota Bandung, Jawa Barat", "Bandung", true},
		{"emoji prefix", "📍 Yogyakarta", "Yogyakarta", true},
		{"locale phrase", "Tinggal di Medan", "Medan", true},
		{"alias", "jogja", "Yogyakarta", true},
		{"district alias", "Jakarta Selatan", "Jakarta", true},
		{"pipe separator", "Surabaya | East Java", "Surabaya", true},
		{"empty", "", "", false},
		{"too short", "ID", "", false},
		{"numeric", "62", "", false},
		{"symbols only", "✨✨✨", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, ok := e.City(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.city, city)
		})
	}
}

func TestGlobalCity(t *testing.T) {
	e := NewGlobal()

	city, ok := e.City("New York, USA")
	assert.True(t, ok)
	assert.Equal(t, "New York", city)

	// No alias table, so Indonesian nicknames pass through as-is
	city, ok = e.City("jogja")
	assert.True(t, ok)
	assert.Equal(t, "Jogja", city)

	city, ok = e.City("based in London")
	assert.True(t, ok)
	assert.Equal(t, "London", city)
}

func TestCityIsDeterministic(t *testing.T) {
	e := NewIndonesian()
	first, _ := e.City("Bekasi, Jawa Barat")
	for i := 0; i < 10; i++ {
		again, _ := e.City("Bekasi, Jawa Barat")
		assert.Equal(t, first, again)
	}
}
