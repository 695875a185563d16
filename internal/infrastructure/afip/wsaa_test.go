package afip_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
)

func TestConstruirTRA(t *testing.T) {
	ahora := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	tra, err := afip.ConstruirTRA(ahora)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(tra), "el TRA canónico debe ser XML bien formado")

	require.NotNil(t, doc.FindElement("//header/uniqueId"))
	svc := doc.FindElement("//service")
	require.NotNil(t, svc)
	assert.Equal(t, "wsfe", svc.Text())

	gen := doc.FindElement("//header/generationTime")
	exp := doc.FindElement("//header/expirationTime")
	require.NotNil(t, gen)
	require.NotNil(t, exp)
	genT, err := time.Parse(time.RFC3339, gen.Text())
	require.NoError(t, err)
	expT, err := time.Parse(time.RFC3339, exp.Text())
	require.NoError(t, err)
	assert.True(t, genT.Before(ahora), "la ventana arranca antes de ahora para absorber desfasajes")
	assert.True(t, expT.After(ahora))
}

func TestParsearTicket(t *testing.T) {
	// WSAA devuelve el loginTicketResponse escapado dentro del envelope.
	raw := `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <loginCmsResponse xmlns="https://wsaahomo.afip.gov.ar/ws/services/LoginCms">
      <loginCmsReturn>&lt;?xml version="1.0" encoding="UTF-8"?&gt;
&lt;loginTicketResponse version="1.0"&gt;
  &lt;header&gt;
    &lt;expirationTime&gt;2025-05-15T23:59:59-03:00&lt;/expirationTime&gt;
  &lt;/header&gt;
  &lt;credentials&gt;
    &lt;token&gt;PD94bWwgdG9rZW4=&lt;/token&gt;
    &lt;sign&gt;c2lnbmF0dXJh=&lt;/sign&gt;
  &lt;/credentials&gt;
&lt;/loginTicketResponse&gt;</loginCmsReturn>
    </loginCmsResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	ticket, err := afip.ParsearTicket([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "PD94bWwgdG9rZW4=", ticket.Token)
	assert.Equal(t, "c2lnbmF0dXJh=", ticket.Sign)
	assert.Equal(t, 2025, ticket.Expiracion.Year())
}

func TestParsearTicket_Malformado(t *testing.T) {
	_, err := afip.ParsearTicket([]byte("<Envelope><Body></Body></Envelope>"))
	assert.ErrorIs(t, err, afip.ErrRespuestaMalformada)
}

func TestTicketAcceso_EsValido(t *testing.T) {
	valido := &afip.TicketAcceso{Token: "t", Sign: "s", Expiracion: time.Now().Add(1 * time.Hour)}
	assert.True(t, valido.EsValido())

	porVencer := &afip.TicketAcceso{Token: "t", Sign: "s", Expiracion: time.Now().Add(2 * time.Minute)}
	assert.False(t, porVencer.EsValido(), "dentro del margen de renovación el ticket ya no se usa")

	var nulo *afip.TicketAcceso
	assert.False(t, nulo.EsValido())
}

// ── TicketProvider ───────────────────────────────────────────────────────────

type loginFake struct {
	llamadas int
	ticket   *afip.TicketAcceso
	err      error
}

func (f *loginFake) Login(ctx context.Context) (*afip.TicketAcceso, error) {
	f.llamadas++
	return f.ticket, f.err
}

func TestTicketProvider_CacheaElTicket(t *testing.T) {
	fake := &loginFake{ticket: &afip.TicketAcceso{
		Token:      "tok",
		Sign:       "sig",
		Expiracion: time.Now().Add(12 * time.Hour),
	}}
	provider := afip.NewTicketProvider(fake, "20123456786")

	for i := 0; i < 3; i++ {
		auth, err := provider.Auth(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", auth.Token)
		assert.Equal(t, "20123456786", auth.Cuit)
	}
	assert.Equal(t, 1, fake.llamadas, "con ticket vigente no se vuelve a loguear")
}

func TestTicketProvider_RenuevaTrasInvalidar(t *testing.T) {
	fake := &loginFake{ticket: &afip.TicketAcceso{
		Token:      "tok",
		Sign:       "sig",
		Expiracion: time.Now().Add(12 * time.Hour),
	}}
	provider := afip.NewTicketProvider(fake, "20123456786")

	_, err := provider.Auth(context.Background())
	require.NoError(t, err)
	provider.Invalidar()
	_, err = provider.Auth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.llamadas)
}

func TestTicketProvider_PropagaErrorDeLogin(t *testing.T) {
	fake := &loginFake{err: errors.New("wsaa caido")}
	provider := afip.NewTicketProvider(fake, "20123456786")

	_, err := provider.Auth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wsaa caido")
}
