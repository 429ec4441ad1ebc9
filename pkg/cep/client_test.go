package cep_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Izioneves/Facilapp-1.2/pkg/cep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Address And Coordinates Resolved", func(t *testing.T) {
		// Arrange
		viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ws/50000000/json/", r.URL.Path)
			w.Write([]byte(`{"logradouro":"Rua do Sol","bairro":"Santo Antônio","localidade":"Recife","uf":"PE"}`))
		}))
		defer viaCEP.Close()

		nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "facilapp-test", r.Header.Get("User-Agent"))
			assert.Contains(t, r.URL.Query().Get("q"), "Rua do Sol")
			w.Write([]byte(`[{"lat":"-8.0631","lon":"-34.8711"}]`))
		}))
		defer nominatim.Close()

		client := cep.NewClient(viaCEP.URL, nominatim.URL, "facilapp-test", 2*time.Second)

		// Act
		result, err := client.FetchAddress(ctx, "50000-000")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Rua do Sol", result.Street)
		assert.Equal(t, "Recife", result.City)
		assert.Equal(t, "PE", result.State)
		require.NotNil(t, result.Lat)
		assert.InDelta(t, -8.0631, *result.Lat, 0.0001)
		assert.InDelta(t, -34.8711, *result.Lon, 0.0001)
	})

	t.Run("Success - No Geocode Match Leaves Coordinates Nil", func(t *testing.T) {
		// Arrange
		viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"logradouro":"Rua Remota","localidade":"Exu","uf":"PE"}`))
		}))
		defer viaCEP.Close()

		nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer nominatim.Close()

		client := cep.NewClient(viaCEP.URL, nominatim.URL, "facilapp-test", 2*time.Second)

		// Act
		result, err := client.FetchAddress(ctx, "56200000")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Exu", result.City)
		assert.Nil(t, result.Lat)
		assert.Nil(t, result.Lon)
	})

	t.Run("Failure - Unknown CEP", func(t *testing.T) {
		// Arrange
		viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"erro":true}`))
		}))
		defer viaCEP.Close()

		client := cep.NewClient(viaCEP.URL, "http://unused", "facilapp-test", 2*time.Second)

		// Act
		result, err := client.FetchAddress(ctx, "99999999")

		// Assert
		assert.Nil(t, result)
		assert.ErrorContains(t, err, "CEP not found")
	})

	t.Run("Failure - Non-Numeric CEP", func(t *testing.T) {
		client := cep.NewClient("http://unused", "http://unused", "facilapp-test", 2*time.Second)

		result, err := client.FetchAddress(ctx, "abc")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "invalid CEP")
	})

	t.Run("Failure - ViaCEP Server Error", func(t *testing.T) {
		viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer viaCEP.Close()

		client := cep.NewClient(viaCEP.URL, "http://unused", "facilapp-test", 2*time.Second)

		result, err := client.FetchAddress(ctx, "50000000")

		assert.Nil(t, result)
		assert.ErrorContains(t, err, "status 500")
	})
}
