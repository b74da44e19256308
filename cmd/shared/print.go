package shared

import (
	"fmt"
	"sort"

	"github.com/zlyZwierz/librouteros/pkg/api"
)

// PrintReplies writes each reply's attributes to stdout, one key=value per
// line with replies separated by a blank line. Keys are sorted so output is
// stable.
func PrintReplies(replies []api.Reply) {
	for i, reply := range replies {
		if i > 0 {
			fmt.Println()
		}

		keys := make([]string, 0, len(reply.Attributes))
		for k := range reply.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, reply.Attributes[k])
		}
	}
}
