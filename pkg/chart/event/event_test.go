package event

import (
	"fmt"
	"reflect"
	"testing"
)

func TestEmitOrder(t *testing.T) {
	var e Emitter[string]
	var got []string
	e.On("*", func(s string) { got = append(got, "wild:"+s) })
	e.On("a", func(s string) { got = append(got, "a1:"+s) })
	e.On("a", func(s string) { got = append(got, "a2:"+s) })
	e.On("b", func(s string) { got = append(got, "b:"+s) })

	e.Emit("a", "x")

	want := []string{"a1:x", "a2:x", "wild:x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnsubscribe(t *testing.T) {
	var e Emitter[int]
	n := 0
	off := e.On("tick", func(int) { n++ })
	e.Emit("tick", 0)
	off()
	e.Emit("tick", 0)
	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
	if e.Has("tick") {
		t.Error("Has(tick) = true after unsubscribe")
	}
}

func TestOnce(t *testing.T) {
	var e Emitter[int]
	n := 0
	e.Once("x", func(int) { n++ })
	e.Emit("x", 0)
	e.Emit("x", 0)
	if n != 1 {
		t.Errorf("Once handler ran %d times, want 1", n)
	}
}

func TestOff(t *testing.T) {
	var e Emitter[int]
	e.On("a", func(int) { t.Error("a handler should be removed") })
	e.On("b", func(int) { t.Error("b handler should be removed") })
	e.Off("a")
	e.Emit("a", 0)
	e.Off("")
	e.Emit("b", 0)
}

func ExampleEmitter() {
	var e Emitter[string]
	e.On("legend-item:click", func(name string) { fmt.Println("clicked", name) })
	e.Emit("legend-item:click", "Sports")
	// Output: clicked Sports
}
