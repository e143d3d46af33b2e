// Command convexify-server runs the convexify engine as a long-lived
// JSON-lines process (spec §6): one Request object per line on stdin, one
// Response object per line on stdout. A malformed or unsolvable request
// never terminates the loop — it is reported on that line's Response and
// the server keeps reading.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"convexify/internal/convexify"
	"convexify/internal/rewrite"
)

func main() {
	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)

	for in.Scan() {
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}

		var req convexify.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := out.Encode(convexify.Response{Error: fmt.Sprintf("malformed request: %s", err)}); encErr != nil {
				log.Fatalf("convexify-server: failed to write response: %v", encErr)
			}
			continue
		}

		resp := convexify.ProcessRequest(req, rewrite.DefaultCaps)
		if err := out.Encode(resp); err != nil {
			log.Fatalf("convexify-server: failed to write response: %v", err)
		}
	}

	if err := in.Err(); err != nil {
		log.Fatalf("convexify-server: reading stdin: %v", err)
	}
}
