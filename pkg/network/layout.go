package network

// Grid geometry of the editor canvas.
const (
	Columns     = 5
	OriginX     = 60
	OriginY     = 50
	ColumnPitch = 230
	RowPitch    = 140

	// Width is the canvas width: five columns.
	Width = 1200

	// rowHeight is the canvas height reserved per grid row.
	rowHeight = 145
)

// Position is the canvas coordinate of a node.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PositionAt returns the grid position of the node at index i.
func PositionAt(i int) Position {
	return Position{
		X: OriginX + ColumnPitch*(i%Columns),
		Y: OriginY + RowPitch*(i/Columns),
	}
}

// Layout assigns every node its grid position by index.
func Layout(nodes []Node) map[string]Position {
	positions := make(map[string]Position, len(nodes))
	for i, n := range nodes {
		positions[n.ID] = PositionAt(i)
	}
	return positions
}

// Height returns the canvas height needed for n nodes.
func Height(n int) int {
	rows := (n + Columns - 1) / Columns
	return rows * rowHeight
}
