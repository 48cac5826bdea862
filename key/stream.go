package key

import (
	"bufio"
	"io"
)

// EncodeStream enciphers text read from r line by line and writes the result to w.
func (k *Key) EncodeStream(r io.Reader, w io.Writer) error {
	return transcodeStream(r, w, k.Encode)
}

// DecodeStream deciphers text read from r line by line and writes the result to w.
func (k *Key) DecodeStream(r io.Reader, w io.Writer) error {
	return transcodeStream(r, w, k.Decode)
}

func transcodeStream(r io.Reader, w io.Writer, xcode func(string) string) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if _, werr := io.WriteString(w, xcode(line)); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
