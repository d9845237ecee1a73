package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opsfloor/opevents/pkg/domain/types"
)

func TestEventStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.EventStatus
		want   bool
	}{
		{
			name:   "valid open",
			status: types.EventStatusOpen,
			want:   true,
		},
		{
			name:   "valid ongoing",
			status: types.EventStatusOnGoing,
			want:   true,
		},
		{
			name:   "valid closed",
			status: types.EventStatusClosed,
			want:   true,
		},
		{
			name:   "valid cancelled",
			status: types.EventStatusCancelled,
			want:   true,
		},
		{
			name:   "invalid status",
			status: types.EventStatus("invalid"),
			want:   false,
		},
		{
			name:   "lowercase is not valid",
			status: types.EventStatus("open"),
			want:   false,
		},
		{
			name:   "empty status",
			status: types.EventStatus(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.status.IsValid()).True()
			} else {
				gt.B(t, tt.status.IsValid()).False()
			}
		})
	}
}

func TestEventStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from types.EventStatus
		to   types.EventStatus
		want bool
	}{
		{
			name: "open to ongoing",
			from: types.EventStatusOpen,
			to:   types.EventStatusOnGoing,
			want: true,
		},
		{
			name: "open to closed",
			from: types.EventStatusOpen,
			to:   types.EventStatusClosed,
			want: true,
		},
		{
			name: "open to cancelled",
			from: types.EventStatusOpen,
			to:   types.EventStatusCancelled,
			want: true,
		},
		{
			name: "ongoing back to open",
			from: types.EventStatusOnGoing,
			to:   types.EventStatusOpen,
			want: true,
		},
		{
			name: "ongoing to closed",
			from: types.EventStatusOnGoing,
			to:   types.EventStatusClosed,
			want: true,
		},
		{
			name: "ongoing to cancelled",
			from: types.EventStatusOnGoing,
			to:   types.EventStatusCancelled,
			want: true,
		},
		{
			name: "closed is terminal",
			from: types.EventStatusClosed,
			to:   types.EventStatusOpen,
			want: false,
		},
		{
			name: "cancelled is terminal",
			from: types.EventStatusCancelled,
			to:   types.EventStatusOpen,
			want: false,
		},
		{
			name: "cancelled to closed",
			from: types.EventStatusCancelled,
			to:   types.EventStatusClosed,
			want: false,
		},
		{
			name: "unknown source status",
			from: types.EventStatus("invalid"),
			to:   types.EventStatusOpen,
			want: false,
		},
		{
			name: "unknown target status",
			from: types.EventStatusOpen,
			to:   types.EventStatus("invalid"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.from.CanTransitionTo(tt.to)).True()
			} else {
				gt.B(t, tt.from.CanTransitionTo(tt.to)).False()
			}
		})
	}
}

func TestEventStatus_IsTerminal(t *testing.T) {
	gt.B(t, types.EventStatusClosed.IsTerminal()).True()
	gt.B(t, types.EventStatusCancelled.IsTerminal()).True()
	gt.B(t, types.EventStatusOpen.IsTerminal()).False()
	gt.B(t, types.EventStatusOnGoing.IsTerminal()).False()
}

func TestEventStatus_Normalize(t *testing.T) {
	gt.V(t, types.EventStatus("").Normalize()).Equal(types.EventStatusOpen)
	gt.V(t, types.EventStatusClosed.Normalize()).Equal(types.EventStatusClosed)
}

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.EventStatus
		wantErr bool
	}{
		{
			name:    "valid open",
			input:   "OPEN",
			want:    types.EventStatusOpen,
			wantErr: false,
		},
		{
			name:    "valid ongoing",
			input:   "ONGOING",
			want:    types.EventStatusOnGoing,
			wantErr: false,
		},
		{
			name:    "valid closed",
			input:   "CLOSED",
			want:    types.EventStatusClosed,
			wantErr: false,
		},
		{
			name:    "valid cancelled",
			input:   "CANCELLED",
			want:    types.EventStatusCancelled,
			wantErr: false,
		},
		{
			name:    "invalid status",
			input:   "invalid",
			want:    "",
			wantErr: true,
		},
		{
			name:    "empty status",
			input:   "",
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseEventStatus(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestAllEventStatuses(t *testing.T) {
	statuses := types.AllEventStatuses()
	gt.A(t, statuses).Length(4)

	for _, status := range statuses {
		gt.B(t, status.IsValid()).
			Describef("Status %s should be valid", status).
			True()
	}
}

func TestEventStatus_String(t *testing.T) {
	gt.S(t, types.EventStatusOpen.String()).Equal("OPEN")
	gt.S(t, types.EventStatusOnGoing.String()).Equal("ONGOING")
	gt.S(t, types.EventStatusClosed.String()).Equal("CLOSED")
	gt.S(t, types.EventStatusCancelled.String()).Equal("CANCELLED")
}
