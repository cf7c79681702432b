// This file is part of CompositeVideo.
//
// CompositeVideo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CompositeVideo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CompositeVideo.  If not, see <https://www.gnu.org/licenses/>.

package dmac

import (
	"fmt"
	"io"

	"github.com/beamloop/compositevideo/curated"
	"github.com/bradleyjkemp/memviz"
)

// graphNode is the shape memviz walks. one node per descriptor, joined
// into the same circle as the chain itself.
type graphNode struct {
	Transfer string
	Next     *graphNode
}

// Graph renders a closed descriptor chain as a graphviz dot document on
// w. memviz follows the node links, including the closing link back to
// the head, so the loop is visible in the rendered graph.
func Graph(w io.Writer, ch *Chain) error {
	if !ch.IsLooped() {
		return curated.Errorf("dmac: graph: chain is not a closed loop")
	}

	nodes := make([]graphNode, ch.Len())
	for i := range nodes {
		d := ch.At(i)

		inc := "incrementing"
		if !d.SrcInc {
			inc = "fixed"
		}
		nodes[i].Transfer = fmt.Sprintf("%d: %d x %s (%s)", i, d.Count, d.Width, inc)
		nodes[i].Next = &nodes[d.Next]
	}

	memviz.Map(w, &nodes[0])

	return nil
}
