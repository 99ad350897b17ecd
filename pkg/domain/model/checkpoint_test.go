package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

func TestCheckpointSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     model.CheckpointSet
		wantErr bool
	}{
		{
			name: "valid https set",
			set: model.CheckpointSet{
				Name:        "ifrnet",
				SourceURL:   "https://example.com/ifrnet.zip",
				Destination: "checkpoints",
			},
		},
		{
			name: "valid gs set",
			set: model.CheckpointSet{
				Name:        "ifrnet",
				SourceURL:   "gs://bucket/ifrnet.zip",
				Destination: "checkpoints",
			},
		},
		{
			name: "missing name",
			set: model.CheckpointSet{
				SourceURL:   "https://example.com/ifrnet.zip",
				Destination: "checkpoints",
			},
			wantErr: true,
		},
		{
			name: "missing destination",
			set: model.CheckpointSet{
				Name:      "ifrnet",
				SourceURL: "https://example.com/ifrnet.zip",
			},
			wantErr: true,
		},
		{
			name: "unsupported scheme",
			set: model.CheckpointSet{
				Name:        "ifrnet",
				SourceURL:   "ftp://example.com/ifrnet.zip",
				Destination: "checkpoints",
			},
			wantErr: true,
		},
		{
			name: "empty URL",
			set: model.CheckpointSet{
				Name:        "ifrnet",
				Destination: "checkpoints",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestCheckpointSet_Scheme(t *testing.T) {
	set := &model.CheckpointSet{SourceURL: "GS://bucket/object.zip"}
	gt.String(t, set.Scheme()).Equal("gs")

	set = &model.CheckpointSet{SourceURL: "https://example.com/a.zip"}
	gt.String(t, set.Scheme()).Equal("https")
}
