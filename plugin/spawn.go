package plugin

import (
	"io"
	"os/exec"
)

// pipeRWC joins a subprocess's stdin and stdout into one
// io.ReadWriteCloser so Dial can hand it to a JSON-RPC channel.
type pipeRWC struct {
	io.Reader
	io.Writer
	cmd *exec.Cmd
}

func (p *pipeRWC) Close() error {
	if wc, ok := p.Writer.(io.Closer); ok {
		wc.Close()
	}
	return p.cmd.Wait()
}

// Spawn starts the plugin binary at path (via shell if given, directly
// otherwise) and returns a ReadWriteCloser over its stdio, ready for
// Dial. This is the "single synchronous subprocess exchange" design note
// from spec.md §5/§9 — failures are returned, never panicked.
func Spawn(path, shell string) (io.ReadWriteCloser, error) {
	var cmd *exec.Cmd
	if shell != "" {
		cmd = exec.Command(shell, path)
	} else {
		cmd = exec.Command(path)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &pipeRWC{Reader: stdout, Writer: stdin, cmd: cmd}, nil
}
