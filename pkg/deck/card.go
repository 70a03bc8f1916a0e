package deck

import (
	"fmt"
	"strings"
)

// Card identifies a single card in the deck
// The features of a card are the base-FeatureSize digits of its value
type Card int

// NoCard marks the absence of a card (i.e., an empty slot)
const NoCard Card = -1

func (c Card) String() string {
	if c == NoCard {
		return "-"
	}

	return fmt.Sprintf("#%d", int(c))
}

// Layout describes how many features a card has, and how many values each feature can take
type Layout struct {
	FeatureSize  int `json:"featureSize"`
	FeatureCount int `json:"featureCount"`
}

// StandardLayout is the classic deck: four features with three values each
var StandardLayout = Layout{FeatureSize: 3, FeatureCount: 4}

// Size returns the number of distinct cards in the layout
func (l Layout) Size() int {
	size := 1
	for i := 0; i < l.FeatureCount; i++ {
		size *= l.FeatureSize
	}

	return size
}

// Features returns the feature values of the card, least significant feature first
func (l Layout) Features(c Card) []int {
	features := make([]int, l.FeatureCount)
	v := int(c)
	for i := range features {
		features[i] = v % l.FeatureSize
		v /= l.FeatureSize
	}

	return features
}

// CardFromFeatures is the inverse of Features
func (l Layout) CardFromFeatures(features []int) Card {
	if len(features) != l.FeatureCount {
		panic(fmt.Sprintf("expected %d features, got %d", l.FeatureCount, len(features)))
	}

	v := 0
	for i := len(features) - 1; i >= 0; i-- {
		if features[i] < 0 || features[i] >= l.FeatureSize {
			panic(fmt.Sprintf("feature value %d out of range", features[i]))
		}

		v = v*l.FeatureSize + features[i]
	}

	return Card(v)
}

var standardNames = [4][3]string{
	{"one", "two", "three"},
	{"red", "green", "purple"},
	{"oval", "diamond", "squiggle"},
	{"empty", "striped", "solid"},
}

// Describe returns a human readable description of the card
// e.g., "two green striped squiggle"
func (l Layout) Describe(c Card) string {
	if c == NoCard {
		return c.String()
	}

	features := l.Features(c)
	if l != StandardLayout {
		return fmt.Sprintf("%s%v", c, features)
	}

	// number, color, shading, shape reads better than storage order
	return strings.Join([]string{
		standardNames[0][features[0]],
		standardNames[1][features[1]],
		standardNames[3][features[3]],
		standardNames[2][features[2]],
	}, " ")
}
