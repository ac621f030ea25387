package cache

import (
	"testing"
	"time"
)

type streak struct {
	days int
}

func TestTimed(t *testing.T) {
	c := NewTimed[streak](time.Hour)

	tstart := time.Now()

	c.set("CITY:US270013", streak{days: 5}, tstart)

	got, ok := c.get("CITY:US270013", tstart.Add(time.Minute))
	if !ok || got.days != 5 {
		t.Errorf("failed to get key that should not be expired: %v %v", got, ok)
	}

	_, ok = c.get("CITY:US270013", tstart.Add(2*time.Hour))
	if ok {
		t.Errorf("succeeded in getting expired key")
	}

	_, ok = c.get("CITY:US270013", tstart.Add(time.Minute))
	if ok {
		t.Errorf("succeeded in getting key that was previously evicted")
	}
}

func TestDelete(t *testing.T) {
	c := NewTimed[int](time.Hour)
	c.Set("key", 3)
	c.Delete("key")
	if _, ok := c.Get("key"); ok {
		t.Errorf("got deleted key")
	}
}
