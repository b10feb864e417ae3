package cube

// The turn permutations are derived once from a geometric model instead of
// hand-written tables. Each sticker sits on a corner cubie at a position in
// {-1,1}^3 and faces outwards along one axis; turning a face rotates every
// sticker whose cubie lies on that face.

type vec [3]int

func (v vec) add(w vec) vec   { return vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v vec) neg() vec        { return vec{-v[0], -v[1], -v[2]} }
func (v vec) scale(k int) vec { return vec{v[0] * k, v[1] * k, v[2] * k} }
func (v vec) dot(w vec) int   { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

func (v vec) cross(w vec) vec {
	return vec{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// rotate turns v a quarter about the unit axis k; clockwise as seen from
// the tip of k when clockwise is true.
func rotate(v, k vec, clockwise bool) vec {
	turn := k.cross(v)
	if clockwise {
		turn = turn.neg()
	}
	return turn.add(k.scale(k.dot(v)))
}

// frame is a face's outward normal and its right and up directions as seen
// from outside.
type frame struct {
	normal, right, up vec
}

var (
	xAxis = vec{1, 0, 0}
	yAxis = vec{0, 1, 0}
	zAxis = vec{0, 0, 1}
)

var frames = [6]frame{
	F: {normal: zAxis, right: xAxis, up: yAxis},
	B: {normal: zAxis.neg(), right: xAxis.neg(), up: yAxis},
	U: {normal: yAxis, right: xAxis, up: zAxis.neg()},
	D: {normal: yAxis.neg(), right: xAxis, up: zAxis},
	L: {normal: xAxis.neg(), right: zAxis, up: yAxis},
	R: {normal: xAxis, right: zAxis.neg(), up: yAxis},
}

// sticker is a sticker's cubie position and outward normal.
type sticker struct {
	pos, normal vec
}

// stickerAt returns the geometry of slot (0 UL, 1 UR, 2 LL, 3 LR) on face.
func stickerAt(face Face, slot int) sticker {
	fr := frames[face]
	horizontal := fr.right
	if slot%2 == 0 {
		horizontal = horizontal.neg()
	}
	vertical := fr.up
	if slot >= 2 {
		vertical = vertical.neg()
	}
	return sticker{pos: fr.normal.add(horizontal).add(vertical), normal: fr.normal}
}

// turns[face][0] is the clockwise permutation and turns[face][1] the
// counter-clockwise one: after the turn, sticker i shows what sticker
// perm[i] showed before.
var turns = buildTurns()

func buildTurns() [6][2][24]int {
	var stickers [24]sticker
	index := make(map[sticker]int, 24)
	for face := F; face <= R; face++ {
		for slot := 0; slot < 4; slot++ {
			s := stickerAt(face, slot)
			stickers[int(face)*4+slot] = s
			index[s] = int(face)*4 + slot
		}
	}

	var result [6][2][24]int
	for face := F; face <= R; face++ {
		axis := frames[face].normal
		for dir, clockwise := range []bool{true, false} {
			perm := &result[face][dir]
			for i := range perm {
				perm[i] = i
			}
			for from, s := range stickers {
				if s.pos.dot(axis) <= 0 {
					continue
				}
				moved := sticker{
					pos:    rotate(s.pos, axis, clockwise),
					normal: rotate(s.normal, axis, clockwise),
				}
				to, ok := index[moved]
				if !ok {
					panic("cube: turn maps a sticker off the cube")
				}
				perm[to] = from
			}
		}
	}
	return result
}
