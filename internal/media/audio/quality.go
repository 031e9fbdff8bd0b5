package audio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	// DefaultQuietThresholdDB marks audio as too quiet to transcribe reliably.
	DefaultQuietThresholdDB = -30.0
	// SilenceFloorDB stands in for digital silence so reports stay JSON-safe.
	SilenceFloorDB = -120.0

	speechMarginDB     = 10.0
	speechRatioMinimum = 0.1
	chunkMillis        = 1000
)

// Diagnostics summarizes an extracted audio file before transcription.
type Diagnostics struct {
	DurationSeconds    float64 `json:"duration"`
	SampleRate         int     `json:"sample_rate"`
	Channels           int     `json:"channels"`
	VolumeDB           float64 `json:"volume_db"`
	IsQuiet            bool    `json:"is_quiet"`
	SpeechRatio        float64 `json:"speech_ratio"`
	HasPotentialSpeech bool    `json:"has_potential_speech"`
}

// ErrUnsupportedWAV reports a WAV layout other than 16-bit PCM.
var ErrUnsupportedWAV = errors.New("unsupported wav format")

// maxFmtChunk bounds the fmt chunk; WAVE_FORMAT_EXTENSIBLE needs 40 bytes.
const maxFmtChunk = 64

// AnalyzeWAVFile reads a 16-bit PCM WAV file and reports loudness and a
// coarse speech ratio: the share of one-second chunks that are not digital
// silence and sit no more than 10 dB below the overall level.
func AnalyzeWAVFile(path string, quietThresholdDB float64) (Diagnostics, error) {
	file, err := os.Open(path)
	if err != nil {
		return Diagnostics{}, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()
	return AnalyzeWAV(bufio.NewReader(file), quietThresholdDB)
}

// AnalyzeWAV is AnalyzeWAVFile over an arbitrary reader.
func AnalyzeWAV(r io.Reader, quietThresholdDB float64) (Diagnostics, error) {
	format, dataSize, err := readWAVHeader(r)
	if err != nil {
		return Diagnostics{}, err
	}

	frameBytes := int(format.channels) * 2
	framesPerChunk := int(format.sampleRate) * chunkMillis / 1000
	if framesPerChunk <= 0 {
		framesPerChunk = 1
	}

	var (
		totalSquares float64
		totalSamples int64
		chunkSquares []float64
		chunkSamples []int64
		frames       int64
	)
	data := io.LimitReader(r, int64(dataSize))
	buf := make([]byte, frameBytes*1024)
	var carry []byte
	for {
		n, readErr := data.Read(buf)
		block := append(carry, buf[:n]...)
		usable := len(block) - len(block)%frameBytes
		for off := 0; off < usable; off += frameBytes {
			if frames%int64(framesPerChunk) == 0 {
				chunkSquares = append(chunkSquares, 0)
				chunkSamples = append(chunkSamples, 0)
			}
			last := len(chunkSquares) - 1
			for ch := 0; ch < int(format.channels); ch++ {
				sample := float64(int16(binary.LittleEndian.Uint16(block[off+ch*2:])))
				sq := sample * sample
				totalSquares += sq
				chunkSquares[last] += sq
			}
			totalSamples += int64(format.channels)
			chunkSamples[last] += int64(format.channels)
			frames++
		}
		carry = append(carry[:0], block[usable:]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return Diagnostics{}, fmt.Errorf("read wav samples: %w", readErr)
		}
	}

	diag := Diagnostics{
		DurationSeconds: float64(frames) / float64(format.sampleRate),
		SampleRate:      int(format.sampleRate),
		Channels:        int(format.channels),
		VolumeDB:        dbfs(totalSquares, totalSamples),
	}
	diag.IsQuiet = diag.VolumeDB < quietThresholdDB

	threshold := diag.VolumeDB - speechMarginDB
	active := 0
	for i := range chunkSquares {
		if chunkSquares[i] > 0 && dbfs(chunkSquares[i], chunkSamples[i]) > threshold {
			active++
		}
	}
	diag.SpeechRatio = float64(active) / float64(max(1, len(chunkSquares)))
	diag.HasPotentialSpeech = diag.SpeechRatio > speechRatioMinimum && !diag.IsQuiet
	return diag, nil
}

func dbfs(sumSquares float64, samples int64) float64 {
	if samples == 0 || sumSquares == 0 {
		return SilenceFloorDB
	}
	rms := math.Sqrt(sumSquares / float64(samples))
	return math.Max(20*math.Log10(rms/32768.0), SilenceFloorDB)
}

type wavFormat struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// readWAVHeader consumes chunks up to the start of the data chunk.
func readWAVHeader(r io.Reader) (wavFormat, uint32, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return wavFormat{}, 0, fmt.Errorf("read wav header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return wavFormat{}, 0, fmt.Errorf("%w: missing RIFF/WAVE signature", ErrUnsupportedWAV)
	}

	var format wavFormat
	haveFormat := false
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return wavFormat{}, 0, fmt.Errorf("read wav chunk: %w", err)
		}
		id := string(header[0:4])
		size := binary.LittleEndian.Uint32(header[4:8])
		padded := int64(size) + int64(size%2)
		switch id {
		case "fmt ":
			if size > maxFmtChunk {
				return wavFormat{}, 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWAV, size)
			}
			body := make([]byte, padded)
			if _, err := io.ReadFull(r, body); err != nil {
				return wavFormat{}, 0, fmt.Errorf("read wav fmt: %w", err)
			}
			if size < 16 {
				return wavFormat{}, 0, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedWAV)
			}
			format = wavFormat{
				audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				channels:      binary.LittleEndian.Uint16(body[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				bitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
			haveFormat = true
		case "data":
			if !haveFormat {
				return wavFormat{}, 0, fmt.Errorf("%w: data before fmt", ErrUnsupportedWAV)
			}
			if format.audioFormat != 1 || format.bitsPerSample != 16 || format.channels == 0 || format.sampleRate == 0 {
				return wavFormat{}, 0, fmt.Errorf("%w: format=%d bits=%d channels=%d", ErrUnsupportedWAV, format.audioFormat, format.bitsPerSample, format.channels)
			}
			return format, size, nil
		default:
			if _, err := io.CopyN(io.Discard, r, padded); err != nil {
				return wavFormat{}, 0, fmt.Errorf("skip wav chunk %q: %w", id, err)
			}
		}
	}
}
