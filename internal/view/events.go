package view

// Event is an input the App reacts to.
type Event interface {
	event()
}

// HashChanged reports a new navigation fragment (on load or after a
// navigation).
type HashChanged struct {
	Fragment string
}

// InputChanged carries the current text of the code input.
type InputChanged struct {
	Value string
}

// SubmitPressed is a click on the submit control.
type SubmitPressed struct{}

// KeyPressed is a key released while the code input has focus.
type KeyPressed struct {
	Key string
}

// KeyEnter is the KeyPressed.Key that confirms the input.
const KeyEnter = "Enter"

func (HashChanged) event()   {}
func (InputChanged) event()  {}
func (SubmitPressed) event() {}
func (KeyPressed) event()    {}
