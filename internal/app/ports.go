package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ollamastub/internal/server"
	"ollamastub/pkg/logging"
)

// bindWithPrompt listens on host:port. While the port is already in use the
// operator is asked for another one; any other bind failure is returned.
func bindWithPrompt(srv *server.Server, host string, port int, in *bufio.Reader, out io.Writer) error {
	for {
		err := srv.Listen(host, port)
		if err == nil {
			return nil
		}

		var bindErr *server.BindError
		if !errors.As(err, &bindErr) || !bindErr.InUse() {
			return err
		}

		logging.Debug("Bootstrap", "bind failed: %v", err)
		fmt.Fprintf(out, "Port %d is already in use.\n", port)
		port, err = promptPort(in, out, port)
		if err != nil {
			return err
		}
	}
}

// promptPort asks for a port until the answer is empty (keep def) or a
// number in 1..65535. End of input aborts.
func promptPort(in *bufio.Reader, out io.Writer, def int) (int, error) {
	for {
		fmt.Fprintf(out, "Port to bind [default %d]: ", def)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return 0, fmt.Errorf("no port entered: %w", err)
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return def, nil
		}
		if port, convErr := strconv.Atoi(answer); convErr == nil && port >= 1 && port <= 65535 {
			return port, nil
		}
		fmt.Fprintln(out, "Please enter a valid port between 1 and 65535.")

		if err != nil {
			return 0, fmt.Errorf("no port entered: %w", err)
		}
	}
}
