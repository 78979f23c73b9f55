// Package layout arranges items in containers.
//
// # Overview
//
// A [Container] owns an ordered set of [Item] values and a placement policy:
// target cell ratio, [AreaType], margin, padding and [Flags]. [Redistribute]
// packs the members into the grid with the largest cells that fits the
// container and writes every member a DockRelative rectangle.
//
// # Packing
//
// [Pack] is the pure search behind Redistribute. For n cells of a given
// aspect in a w×h box it tries the best height-limited and width-limited
// square grids, keeps the one with the larger cell and drops trailing rows
// or columns that would stay empty. For an 800×600 box and seven square
// cells that is a 3×3 grid of 200px cells.
//
// # Area Types
//
//   - [Fill]: every cell holds an item; a partial first row stretches.
//   - [MinimizeWaste]: the packed grid is stretched over the container.
//   - [Uniform]: cells keep the size the ratio and padding dictate.
//   - [UniformMin]: as Uniform, packed as if at least MinCount items were
//     present.
//
// # Flags
//
// [Flags] replaces the packed flag word with named fields. [FlagsFromBits]
// and [Flags.Bits] convert between the two without loss:
//
//	0x001 flip-h          0x010 no-margin-left    0x100 dock-in-place
//	0x002 flip-v          0x020 no-margin-right   0x200 dock-stack
//	0x004 center-h        0x040 no-margin-top     0x400 dock-aux1
//	0x008 center-v        0x080 no-margin-bottom  0x800 dock-aux2
//
// A container with any dock bit accepts floating items. With dock-in-place
// and a single row or column, members are keyed by their position along
// the long axis ([InPlaceKey]) so a dropped item lands where it was released.
//
// # Membership
//
// Item membership is private state. [Item.Join], [Item.Leave] and
// [Item.Rejoin] keep the container's member list and the item's own view in
// step; the dock package builds its state machine on them.
package layout
