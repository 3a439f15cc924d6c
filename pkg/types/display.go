package types

// DisplayState is whether an editor session shows its edit controls.
type DisplayState int

const (
	Collapsed DisplayState = iota
	Expanded
)

func (d DisplayState) String() string {
	if d == Expanded {
		return "expanded"
	}
	return "collapsed"
}
