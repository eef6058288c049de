package cards

import (
	"testing"
)

// BenchmarkBestKey7 benchmarks the hot path of the equity engine
func BenchmarkBestKey7(b *testing.B) {
	hands := []struct {
		name  string
		cards [7]Card
	}{
		{"Royal flush", seven("AhKhQhJhTh2d3c")},
		{"Quad aces", seven("AsAhAdAcKs2d3c")},
		{"Full house", seven("AsAhAdKsKh2d3c")},
		{"Flush", seven("AhKh9h5h2h3dQc")},
		{"Straight", seven("AhKdQcJsTs2h3c")},
		{"Two pair", seven("AsAhKdKsQh2d3c")},
		{"One pair", seven("AsAhKdQsJh9d7c")},
		{"High card", seven("AhKd9s7c5h3d2s")},
	}

	b.Run("AllHandTypes", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for k := range hands {
				_ = BestKey7(&hands[k].cards)
			}
		}
	})

	for k := range hands {
		hand := &hands[k]
		b.Run(hand.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = BestKey7(&hand.cards)
			}
		})
	}
}

// BenchmarkEvaluate benchmarks classification into a HandRank value
func BenchmarkEvaluate(b *testing.B) {
	hand := five("AsAhKdKsQh")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(hand)
	}
}

// BenchmarkCompare benchmarks hand comparison
func BenchmarkCompare(b *testing.B) {
	val1 := BestOf7(seven("9s8s7s6s5s2h3d"))
	val2 := BestOf7(seven("AsAhAdAcKs2d3c"))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Compare(val1, val2)
	}
}

// BenchmarkParseCard benchmarks card parsing
func BenchmarkParseCard(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}

// BenchmarkParseCards benchmarks parsing multiple cards
func BenchmarkParseCards(b *testing.B) {
	input := "AhKhQhJhTh2d3c"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ParseCards(input)
	}
}
