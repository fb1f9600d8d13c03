package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// encodeWAV wraps raw PCM16 samples in a RIFF/WAVE container.
func encodeWAV(samples []int16, sampleRate, channels int) []byte {
	var buf bytes.Buffer

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, int16(channels))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*channels*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, int16(channels*2))            // block align
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// writeTempWAV writes samples to a freshly created temporary .wav file and
// returns its path. The caller owns the file; the transcriber removes it
// after upload.
func writeTempWAV(samples []int16, sampleRate, channels int) (string, error) {
	f, err := os.CreateTemp("", "interview-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(encodeWAV(samples, sampleRate, channels)); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing wav: %w", err)
	}

	return f.Name(), nil
}
