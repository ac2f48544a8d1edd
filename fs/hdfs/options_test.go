package hdfs

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/errors"
)

func TestOptionsFromURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		want     Options
		wantCode errors.ErrorCode
	}{
		{
			name: "default port",
			uri:  "hdfs://namenode/data/file",
			want: Options{Host: "namenode", Port: 8020},
		},
		{
			name: "explicit port and user info",
			uri:  "hdfs://alice@namenode:9000/data",
			want: Options{Host: "namenode", Port: 9000, User: "alice"},
		},
		{
			name: "query keys",
			uri:  "hdfs://namenode/data?user=bob&replication=2&buffer_size=4096&default_block_size=134217728&kerb_ticket=/tmp/krb5cc",
			want: Options{
				Host:           "namenode",
				Port:           8020,
				User:           "bob",
				Replication:    2,
				BufferSize:     4096,
				BlockSize:      134217728,
				KerberosTicket: "/tmp/krb5cc",
			},
		},
		{
			name: "viewfs keeps scheme on host",
			uri:  "viewfs://cluster/data",
			want: Options{Host: "viewfs://cluster", Port: 8020},
		},
		{
			name:     "unknown query key",
			uri:      "hdfs://namenode/data?foo=bar",
			wantCode: errors.CodeInvalidInput,
		},
		{
			name:     "non-numeric replication",
			uri:      "hdfs://namenode/data?replication=many",
			wantCode: errors.CodeInvalidInput,
		},
		{
			name:     "missing host",
			uri:      "hdfs:///data",
			wantCode: errors.CodeInvalidConfig,
		},
		{
			name:     "wrong scheme",
			uri:      "s3://bucket/key",
			wantCode: errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.uri)
			require.NoError(t, err)

			got, err := OptionsFromURI(u)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionsAddress(t *testing.T) {
	assert.Equal(t, "namenode:8020", (&Options{Host: "namenode"}).Address())
	assert.Equal(t, "namenode:9000", (&Options{Host: "namenode", Port: 9000}).Address())
	assert.Equal(t, 3, (&Options{}).replication())
	assert.Equal(t, 5, (&Options{Replication: 5}).replication())
}
