package detection

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// mask is a row-major binary foreground mask.
type mask struct {
	width  int
	height int
	fg     []bool
}

func (m *mask) at(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.fg[y*m.width+x]
}

// component is one 8-connected foreground region.
type component struct {
	id     int32
	start  Point // first pixel in raster order
	minX   int
	minY   int
	maxX   int
	maxY   int
	pixels int
}

// contour is the traced outer border of a component.
type contour struct {
	component
	points []Point
	area   float64
}

// neighbors lists the 8 Moore neighbours in clockwise screen order starting at west.
var neighbors = [8]Point{
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
}

func neighborIndex(dx, dy int) int {
	for i, n := range neighbors {
		if n.X == dx && n.Y == dy {
			return i
		}
	}
	return 0
}

// labelComponents assigns a component id (starting at 1) to every foreground
// pixel. Components are numbered in raster order of their first pixel.
//
// Uses an explicit stack rather than recursion so large garments cannot
// overflow the goroutine stack.
func labelComponents(m *mask) ([]int32, []component) {
	labels := make([]int32, m.width*m.height)
	comps := make([]component, 0)
	stack := make([]Point, 0, 64)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.fg[y*m.width+x] || labels[y*m.width+x] != 0 {
				continue
			}

			c := component{
				id:    int32(len(comps) + 1),
				start: Point{X: x, Y: y},
				minX:  x, minY: y, maxX: x, maxY: y,
			}
			labels[y*m.width+x] = c.id
			stack = append(stack[:0], Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				c.pixels++
				if p.X < c.minX {
					c.minX = p.X
				}
				if p.X > c.maxX {
					c.maxX = p.X
				}
				if p.Y < c.minY {
					c.minY = p.Y
				}
				if p.Y > c.maxY {
					c.maxY = p.Y
				}

				for _, n := range neighbors {
					nx, ny := p.X+n.X, p.Y+n.Y
					if !m.at(nx, ny) || labels[ny*m.width+nx] != 0 {
						continue
					}
					labels[ny*m.width+nx] = c.id
					stack = append(stack, Point{X: nx, Y: ny})
				}
			}

			comps = append(comps, c)
		}
	}

	return labels, comps
}

// outerBackground marks every background pixel 4-connected to the image
// border. Background pixels left unmarked lie inside a hole of some component.
func outerBackground(m *mask) []bool {
	outside := make([]bool, m.width*m.height)
	stack := make([]Point, 0, 64)

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= m.width || y >= m.height {
			return
		}
		i := y*m.width + x
		if m.fg[i] || outside[i] {
			return
		}
		outside[i] = true
		stack = append(stack, Point{X: x, Y: y})
	}

	for x := 0; x < m.width; x++ {
		push(x, 0)
		push(x, m.height-1)
	}
	for y := 0; y < m.height; y++ {
		push(0, y)
		push(m.width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X-1, p.Y)
		push(p.X+1, p.Y)
		push(p.X, p.Y-1)
		push(p.X, p.Y+1)
	}

	return outside
}

// isExternal reports whether a component borders the outer background rather
// than a hole of another component. The pixel directly above the component's
// first raster pixel is always background and belongs to the region that
// encloses the component.
func isExternal(c component, outside []bool, width int) bool {
	if c.start.Y == 0 {
		return true
	}
	return outside[(c.start.Y-1)*width+c.start.X]
}

// traceBoundary follows the outer border of a component clockwise with Moore
// neighbour tracing. The walk ends when the first step out of the start pixel
// is about to repeat, which also terminates single-pixel-wide shapes.
func traceBoundary(labels []int32, width, height int, c component) []Point {
	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return labels[y*width+x] == c.id
	}

	points := []Point{c.start}
	cur := c.start
	back := 0 // west of the first raster pixel is always background
	var first Point
	haveFirst := false

	// Each border pixel is entered at most four times.
	limit := 4*c.pixels + 8
	for step := 0; step < limit; step++ {
		found := -1
		for i := 1; i <= 8; i++ {
			d := (back + i) % 8
			if inside(cur.X+neighbors[d].X, cur.Y+neighbors[d].Y) {
				found = d
				break
			}
		}
		if found < 0 {
			// Isolated pixel.
			return points
		}

		next := Point{X: cur.X + neighbors[found].X, Y: cur.Y + neighbors[found].Y}
		if !haveFirst {
			first = next
			haveFirst = true
		} else if cur == c.start && next == first {
			break
		}

		prev := (found + 7) % 8
		bx, by := cur.X+neighbors[prev].X, cur.Y+neighbors[prev].Y
		back = neighborIndex(bx-next.X, by-next.Y)

		points = append(points, next)
		cur = next
	}

	// Drop the closing return to the start pixel.
	if len(points) > 1 && points[len(points)-1] == c.start {
		points = points[:len(points)-1]
	}
	return points
}

// polygonArea returns the shoelace area enclosed by a closed pixel-centre path.
func polygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum int
	for i := range points {
		j := (i + 1) % len(points)
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// findExternalContours returns the outer contours of every component that is
// not nested inside another component's hole, in raster order.
func findExternalContours(m *mask) []contour {
	labels, comps := labelComponents(m)
	if len(comps) == 0 {
		return nil
	}
	outside := outerBackground(m)

	contours := make([]contour, 0, len(comps))
	for _, c := range comps {
		if !isExternal(c, outside, m.width) {
			continue
		}
		pts := traceBoundary(labels, m.width, m.height, c)
		contours = append(contours, contour{
			component: c,
			points:    pts,
			area:      polygonArea(pts),
		})
	}
	return contours
}
