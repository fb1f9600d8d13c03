package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEncodeWAV_Header(t *testing.T) {
	samples := []int16{0, 100, -100, 32000}
	data := encodeWAV(samples, 44100, 1)

	if string(data[0:4]) != "RIFF" {
		t.Errorf("missing RIFF marker: %q", data[0:4])
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("missing WAVE marker: %q", data[8:12])
	}

	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels != 1 {
		t.Errorf("channels: got %d, want 1", channels)
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate != 44100 {
		t.Errorf("sample rate: got %d, want 44100", sampleRate)
	}

	byteRate := binary.LittleEndian.Uint32(data[28:32])
	if byteRate != 44100*2 {
		t.Errorf("byte rate: got %d, want %d", byteRate, 44100*2)
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if dataSize != uint32(len(samples)*2) {
		t.Errorf("data size: got %d, want %d", dataSize, len(samples)*2)
	}

	if len(data) != 44+len(samples)*2 {
		t.Errorf("total size: got %d, want %d", len(data), 44+len(samples)*2)
	}
}

func TestEncodeWAV_StereoBlockAlign(t *testing.T) {
	data := encodeWAV([]int16{1, 2, 3, 4}, 16000, 2)

	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels != 2 {
		t.Errorf("channels: got %d, want 2", channels)
	}
	blockAlign := binary.LittleEndian.Uint16(data[32:34])
	if blockAlign != 4 {
		t.Errorf("block align: got %d, want 4", blockAlign)
	}
	byteRate := binary.LittleEndian.Uint32(data[28:32])
	if byteRate != 16000*4 {
		t.Errorf("byte rate: got %d, want %d", byteRate, 16000*4)
	}
}

func TestWriteTempWAV(t *testing.T) {
	path, err := writeTempWAV([]int16{5, 6, 7}, 16000, 1)
	if err != nil {
		t.Fatalf("writeTempWAV error: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp wav: %v", err)
	}
	if string(data[0:4]) != "RIFF" {
		t.Error("temp file is not a WAV")
	}
	if filepath.Ext(path) != ".wav" {
		t.Errorf("temp file has wrong extension: %s", path)
	}
}

func TestFileRecorder_ServesAndMarksProcessed(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "answer1.wav")
	if err := os.WriteFile(original, []byte("fake wav content"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewFileRecorder(dir)

	path, err := rec.Record(context.Background(), 15*time.Second)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading served copy: %v", err)
	}
	if string(data) != "fake wav content" {
		t.Errorf("served copy content mismatch: %q", data)
	}

	if _, err := os.Stat(original); !os.IsNotExist(err) {
		t.Error("original not renamed after serving")
	}
	if _, err := os.Stat(original + ".processed"); err != nil {
		t.Error("processed marker file missing")
	}
}

func TestFileRecorder_ServesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.wav", "a.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rec := NewFileRecorder(dir)

	first, err := rec.Record(context.Background(), time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(first)

	data, _ := os.ReadFile(first)
	if string(data) != "a.wav" {
		t.Errorf("first served file: got %q, want a.wav content", data)
	}
}

func TestFileRecorder_RenameFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "answer.wav"), []byte("fake wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewFileRecorder(dir)
	rec.rename = func(_, _ string) error {
		return errors.New("read-only file system")
	}

	_, err := rec.Record(context.Background(), time.Second)
	if err == nil {
		t.Fatal("expected rename failure to surface")
	}
	if !strings.Contains(err.Error(), "read-only file system") {
		t.Errorf("error does not carry the rename cause: %v", err)
	}
}

func TestFileRecorder_CancelledWhileWaiting(t *testing.T) {
	rec := NewFileRecorder(t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := rec.Record(ctx, time.Second); err == nil {
		t.Fatal("expected context error while waiting for audio")
	}
}
