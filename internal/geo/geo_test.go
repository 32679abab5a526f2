package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMissingPoints(t *testing.T) {
	point := &Point{Lat: 32.0853, Lng: 34.7818}

	assert.Nil(t, Distance(nil, nil))
	assert.Nil(t, Distance(point, nil))
	assert.Nil(t, Distance(nil, point))
}

func TestDistanceSamePoint(t *testing.T) {
	point := &Point{Lat: 32.0853, Lng: 34.7818}

	d := Distance(point, point)
	require.NotNil(t, d)
	assert.Equal(t, 0.0, *d)
}

func TestDistanceTelAvivJerusalem(t *testing.T) {
	telAviv := &Point{Lat: 32.0853, Lng: 34.7818}
	jerusalem := &Point{Lat: 31.7683, Lng: 35.2137}

	d := Distance(telAviv, jerusalem)
	require.NotNil(t, d)
	assert.InDelta(t, 54.0, *d, 2.0)
}

func TestDistanceSymmetric(t *testing.T) {
	a := &Point{Lat: 32.0853, Lng: 34.7818}
	b := &Point{Lat: 32.7940, Lng: 34.9896}

	ab := Distance(a, b)
	ba := Distance(b, a)
	require.NotNil(t, ab)
	require.NotNil(t, ba)
	assert.Equal(t, *ab, *ba)
}

func TestDistanceRoundedToOneDecimal(t *testing.T) {
	a := &Point{Lat: 32.0853, Lng: 34.7818}
	b := &Point{Lat: 32.0853, Lng: 34.8818}

	d := Distance(a, b)
	require.NotNil(t, d)
	assert.InDelta(t, *d, math.Round(*d*10)/10, 1e-9)
}
