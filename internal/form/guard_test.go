package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardDirectAccessRedirects(t *testing.T) {
	guard := NewGuard(NewMemorySession())

	route, allowed := guard.Enter()
	assert.False(t, allowed)
	assert.Equal(t, RouteContact, route)
}

func TestGuardMarkerConsumedOnce(t *testing.T) {
	session := NewMemorySession()
	session.Set("fromContact", "true")
	guard := NewGuard(session)

	route, allowed := guard.Enter()
	assert.True(t, allowed)
	assert.Equal(t, RouteThanks, route)

	// マーカーは消費済みなのでリロード相当の再進入は弾かれる
	route, allowed = guard.Enter()
	assert.False(t, allowed)
	assert.Equal(t, RouteContact, route)

	_, ok := session.Get("fromContact")
	assert.False(t, ok)
}

func TestGuardIgnoresForeignMarkerValue(t *testing.T) {
	session := NewMemorySession()
	session.Set("fromContact", "yes")
	guard := NewGuard(session)

	_, allowed := guard.Enter()
	assert.False(t, allowed)
}
