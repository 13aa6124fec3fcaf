package domain

// Side names which of the two linked amount fields drove the last update.
type Side string

const (
	SidePrimary   Side = "primary"
	SideSecondary Side = "secondary"
)

func (s Side) Valid() bool {
	return s == SidePrimary || s == SideSecondary
}

// Amounts is the text projection of the linked amount fields.
type Amounts struct {
	Primary   string
	Secondary string
	Driver    Side
}

// Ready reports whether both fields carry a value.
func (a Amounts) Ready() bool {
	return a.Primary != "" && a.Secondary != ""
}
