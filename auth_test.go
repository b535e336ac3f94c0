package infobip

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeaders(t *testing.T) {
	require.Equal(t, "Basic dTpw", BasicAuthorization("u", "p"))
	require.Equal(t, "App ABC", KeyAuthorization("ABC"))
}

func TestConfigAuthorization(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "key by default",
			cfg:  Config{APIKey: "ABC"},
			want: "App ABC",
		},
		{
			name: "key",
			cfg:  Config{APIKey: "ABC", AuthType: AuthKey, Username: "ignored"},
			want: "App ABC",
		},
		{
			name: "basic",
			cfg:  Config{AuthType: AuthBasic, Username: "Aladdin", Password: "open sesame"},
			want: "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==",
		},
		{
			name:    "basic without username",
			cfg:     Config{AuthType: AuthBasic, Password: "p"},
			wantErr: true,
		},
		{
			name:    "key without key",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cfg:     Config{AuthType: "oauth", APIKey: "ABC"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cfg.authorization()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestConfigBaseURL(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{cfg: Config{}, want: "https://api.infobip.com"},
		{cfg: Config{Production: true}, want: "https://api.infobip.com"},
		{cfg: Config{BaseHost: "xyz.api.infobip.com", Encrypted: true}, want: "https://xyz.api.infobip.com"},
		{cfg: Config{BaseHost: "127.0.0.1:8080"}, want: "http://127.0.0.1:8080"},
		{cfg: Config{BaseHost: "http://127.0.0.1:8080/", Encrypted: true}, want: "http://127.0.0.1:8080"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.cfg.BaseURL(), "config %+v", tc.cfg)
	}
}
