package request

import (
	"bytes"
	"strconv"

	"streamhttp/internal/bodysink"
	"streamhttp/internal/buffer"
	"streamhttp/internal/linescan"
	"streamhttp/internal/protoerr"
)

// chunkStage is the chunked-transfer sub-state-machine's own discriminant,
// independent of the top-level StateMachine stage.
type chunkStage uint8

const (
	chunkAwaitingSize chunkStage = iota
	chunkAwaitingData
)

// chunkFramer implements the chunked-transfer body decoder: repeated
// SIZE[;ext] LINE-TERM DATA LINE-TERM groups, terminated by a zero-size
// chunk. It carries its own state across Feed calls so a chunk size line
// parsed from one Feed is not re-derived when its data arrives in a
// later one.
type chunkFramer struct {
	stage chunkStage
	size  int64
}

func newChunkFramer() *chunkFramer {
	return &chunkFramer{}
}

// step advances the chunk framer as far as buf allows. progressed is true
// whenever any bytes were consumed or the decoder's own sub-state moved
// forward; finished is true once the size line of the terminating
// zero-size chunk has been consumed. The trailer block that follows it
// (possibly just an empty line) is left in buf for the driver.
func (f *chunkFramer) step(buf *buffer.Buffer, term []byte, sink bodysink.Sink) (progressed bool, finished bool, err error) {
	switch f.stage {
	case chunkAwaitingSize:
		line, ok, _ := linescan.Scan(buf, term, 0)
		if !ok {
			return false, false, nil
		}
		sizeTok := line
		if i := bytes.IndexByte(sizeTok, ';'); i >= 0 {
			sizeTok = sizeTok[:i]
		}
		sizeTok = bytes.TrimSpace(sizeTok)
		size, convErr := strconv.ParseInt(string(sizeTok), 16, 64)
		if convErr != nil || size < 0 {
			return false, false, protoerr.Wrap(protoerr.ErrInvalidBody, "invalid chunk size")
		}
		f.size = size
		if size == 0 {
			return true, true, nil
		}
		f.stage = chunkAwaitingData
		return true, false, nil

	case chunkAwaitingData:
		need := int(f.size) + len(term)
		if buf.Len() < need {
			return false, false, nil
		}
		data := buf.Take(int(f.size))
		trailer := buf.Take(len(term))
		if !bytes.Equal(trailer, term) {
			return false, false, protoerr.Wrap(protoerr.ErrInvalidBody, "chunk data not terminated by line terminator")
		}
		if f.size == 0 {
			f.stage = chunkAwaitingSize
			return true, true, nil
		}
		sink.Write(data)
		f.stage = chunkAwaitingSize
		return true, false, nil
	}
	return false, false, nil
}
