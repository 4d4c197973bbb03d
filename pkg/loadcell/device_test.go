package loadcell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    RawSample
		wantErr bool
	}{
		{
			name: "valid line",
			line: "1700000000000000,42137,0",
			want: RawSample{
				Timestamp: time.Unix(0, 1700000000000000*1000),
				Count:     42137,
				Button:    false,
			},
		},
		{
			name: "button pressed",
			line: "1700000000000000,42137,1",
			want: RawSample{
				Timestamp: time.Unix(0, 1700000000000000*1000),
				Count:     42137,
				Button:    true,
			},
		},
		{
			name: "negative count",
			line: "1700000000000000,-1301,0",
			want: RawSample{
				Timestamp: time.Unix(0, 1700000000000000*1000),
				Count:     -1301,
				Button:    false,
			},
		},
		{
			name: "max 24-bit count",
			line: "1700000000000000,8388607,0",
			want: RawSample{
				Timestamp: time.Unix(0, 1700000000000000*1000),
				Count:     8388607,
				Button:    false,
			},
		},
		{
			name:    "count above 24-bit range",
			line:    "1700000000000000,8388608,0",
			wantErr: true,
		},
		{
			name:    "count below 24-bit range",
			line:    "1700000000000000,-8388609,0",
			wantErr: true,
		},
		{
			name:    "too few fields",
			line:    "1700000000000000,42137",
			wantErr: true,
		},
		{
			name:    "too many fields",
			line:    "1700000000000000,42137,0,1",
			wantErr: true,
		},
		{
			name:    "garbage timestamp",
			line:    "abc,42137,0",
			wantErr: true,
		},
		{
			name:    "garbage count",
			line:    "1700000000000000,xyz,0",
			wantErr: true,
		},
		{
			name:    "invalid button level",
			line:    "1700000000000000,42137,2",
			wantErr: true,
		},
		{
			name:    "empty fields",
			line:    ",,",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	d := New("/dev/ttyACM0", 0, 0)

	assert.Equal(t, DefaultBaudRate, d.baudRate)
	assert.Equal(t, DefaultBufferSize, d.bufSize)
	assert.False(t, d.IsConnected())
}

func TestSerial_CloseWithoutConnect(t *testing.T) {
	d := New("/dev/ttyACM0", 0, 0)
	assert.NoError(t, d.Close())
}
