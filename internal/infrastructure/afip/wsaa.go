// Autenticación WSAA: armado y firma CMS del TRA, loginCms y cache del
// ticket de acceso.

package afip

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"
	"go.mozilla.org/pkcs7"
	"golang.org/x/crypto/pkcs12"
)

const (
	wsaaURLHomo = "https://wsaahomo.afip.gov.ar/ws/services/LoginCms"
	wsaaURLProd = "https://wsaa.afip.gov.ar/ws/services/LoginCms"

	wsaaServicio = "wsfe"

	// Margen antes de la expiración a partir del cual el ticket se renueva.
	margenRenovacion = 5 * time.Minute
)

// TicketAcceso es la terna Token/Sign emitida por WSAA junto con su ventana
// de validez. Token y Sign se transportan tal cual al Auth de cada llamada.
type TicketAcceso struct {
	Token      string
	Sign       string
	Expiracion time.Time
}

// EsValido informa si el ticket sigue siendo usable, con margen para que una
// llamada en vuelo no llegue a AFIP con el ticket recién vencido.
func (t *TicketAcceso) EsValido() bool {
	return t != nil && t.Token != "" && time.Now().Before(t.Expiracion.Add(-margenRenovacion))
}

// ── Certificado ──────────────────────────────────────────────────────────────

// CargarCertificado carga el certificado del contribuyente desde un .p12/.pfx
// o desde un par PEM según la extensión del archivo.
func CargarCertificado(certPath, keyPath, password string) (tls.Certificate, error) {
	if strings.HasSuffix(strings.ToLower(certPath), ".p12") ||
		strings.HasSuffix(strings.ToLower(certPath), ".pfx") {
		data, err := os.ReadFile(certPath)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("leer p12: %w", err)
		}
		priv, cert, err := pkcs12.Decode(data, password)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("decodificar p12: %w", err)
		}
		return tls.Certificate{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  priv,
			Leaf:        cert,
		}, nil
	}
	if keyPath == "" {
		keyPath = certPath
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("cargar PEM: %w", err)
	}
	return cert, nil
}

// ── TRA (ticket request) ─────────────────────────────────────────────────────

// ConstruirTRA arma el loginTicketRequest canónico para el servicio wsfe.
// La ventana de validez es de 10 minutos hacia atrás y 10 hacia adelante para
// absorber desfasajes de reloj con AFIP.
func ConstruirTRA(ahora time.Time) ([]byte, error) {
	desde := ahora.Add(-10 * time.Minute)
	hasta := ahora.Add(10 * time.Minute)

	doc := etree.NewDocument()
	root := doc.CreateElement("loginTicketRequest")
	root.CreateAttr("version", "1.0")

	header := root.CreateElement("header")
	header.CreateElement("uniqueId").SetText(fmt.Sprintf("%d", ahora.Unix()))
	header.CreateElement("generationTime").SetText(desde.Format(time.RFC3339))
	header.CreateElement("expirationTime").SetText(hasta.Format(time.RFC3339))
	root.CreateElement("service").SetText(wsaaServicio)

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("wsaa: serializar TRA: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("wsaa: canonicalizar TRA: %w", err)
	}
	return canonical, nil
}

// FirmarTRA firma el TRA en CMS (PKCS#7) y lo devuelve en Base64, listo para
// el parámetro in0 de loginCms.
func FirmarTRA(tra []byte, cert tls.Certificate) (string, error) {
	priv, ok := cert.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("wsaa: el certificado debe incluir llave privada RSA")
	}
	x509Cert := cert.Leaf
	if x509Cert == nil {
		parsed, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return "", fmt.Errorf("wsaa: parsear certificado: %w", err)
		}
		x509Cert = parsed
	}

	signed, err := pkcs7.NewSignedData(tra)
	if err != nil {
		return "", fmt.Errorf("wsaa: preparar CMS: %w", err)
	}
	if err := signed.AddSigner(x509Cert, priv, pkcs7.SignerInfoConfig{}); err != nil {
		return "", fmt.Errorf("wsaa: firmar CMS: %w", err)
	}
	der, err := signed.Finish()
	if err != nil {
		return "", fmt.Errorf("wsaa: cerrar CMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}

// ── loginCms ─────────────────────────────────────────────────────────────────

// ClienteWSAA ejecuta loginCms contra el WSAA del entorno configurado.
type ClienteWSAA struct {
	url        string
	cert       tls.Certificate
	httpClient *http.Client
}

// NewClienteWSAA construye el cliente para el entorno dado ("homo" o "prod").
func NewClienteWSAA(env string, cert tls.Certificate) (*ClienteWSAA, error) {
	var url string
	switch env {
	case AppEnvHomo:
		url = wsaaURLHomo
	case AppEnvProd:
		url = wsaaURLProd
	default:
		return nil, fmt.Errorf("entorno desconocido %q (usar 'homo' o 'prod')", env)
	}
	return &ClienteWSAA{
		url:        url,
		cert:       cert,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Login arma, firma y envía el TRA, y devuelve el ticket emitido por WSAA.
func (c *ClienteWSAA) Login(ctx context.Context) (*TicketAcceso, error) {
	tra, err := ConstruirTRA(time.Now())
	if err != nil {
		return nil, err
	}
	cms, err := FirmarTRA(tra, c.cert)
	if err != nil {
		return nil, err
	}

	payload := construirLoginCms(cms)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("wsaa: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wsaa: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("wsaa: leer respuesta: %w", err)
	}
	return ParsearTicket(raw)
}

func construirLoginCms(cmsB64 string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:wsaa="http://wsaa.view.sua.dvadac.desein.afip.gov">`)
	sb.WriteString(`<soapenv:Header/>`)
	sb.WriteString(`<soapenv:Body><wsaa:loginCms><wsaa:in0>`)
	sb.WriteString(cmsB64)
	sb.WriteString(`</wsaa:in0></wsaa:loginCms></soapenv:Body>`)
	sb.WriteString(`</soapenv:Envelope>`)
	return sb.String()
}

// ParsearTicket extrae el ticket del loginCmsReturn. WSAA devuelve el
// loginTicketResponse escapado dentro del envelope SOAP, por lo que se parsea
// en dos pasos.
func ParsearTicket(raw []byte) (*TicketAcceso, error) {
	var env struct {
		Return string     `xml:"Body>loginCmsResponse>loginCmsReturn"`
		Fault  *SoapFault `xml:"Body>Fault"`
	}
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRespuestaMalformada, err)
	}
	if env.Fault != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrSoapFault, env.Fault.Code, env.Fault.Message)
	}
	if env.Return == "" {
		return nil, fmt.Errorf("%w: loginCmsReturn vacío", ErrRespuestaMalformada)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(env.Return); err != nil {
		return nil, fmt.Errorf("%w: parsear loginTicketResponse: %v", ErrRespuestaMalformada, err)
	}
	token := doc.FindElement("//credentials/token")
	sign := doc.FindElement("//credentials/sign")
	expiracion := doc.FindElement("//header/expirationTime")
	if token == nil || sign == nil || expiracion == nil {
		return nil, fmt.Errorf("%w: loginTicketResponse sin credenciales", ErrRespuestaMalformada)
	}
	exp, err := time.Parse(time.RFC3339, expiracion.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: expirationTime inválido: %v", ErrRespuestaMalformada, err)
	}
	return &TicketAcceso{
		Token:      token.Text(),
		Sign:       sign.Text(),
		Expiracion: exp,
	}, nil
}

// ── Provider con cache ───────────────────────────────────────────────────────

// LoginService abstrae la obtención del ticket; en tests se inyecta un doble.
type LoginService interface {
	Login(ctx context.Context) (*TicketAcceso, error)
}

// TicketProvider cachea el ticket y lo renueva solo cuando entra en la
// ventana de renovación. AFIP rechaza logins repetidos con un ticket vigente,
// así que el cache no es una optimización sino parte del protocolo.
type TicketProvider struct {
	login LoginService
	cuit  string

	mu     sync.Mutex
	ticket *TicketAcceso
}

// NewTicketProvider construye el provider para el CUIT emisor dado.
func NewTicketProvider(login LoginService, cuit string) *TicketProvider {
	return &TicketProvider{login: login, cuit: cuit}
}

// Auth devuelve la terna de credenciales vigente, renovando el ticket si hace
// falta. Seguro para uso concurrente.
func (p *TicketProvider) Auth(ctx context.Context) (Auth, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ticket.EsValido() {
		ticket, err := p.login.Login(ctx)
		if err != nil {
			return Auth{}, fmt.Errorf("renovando ticket WSAA: %w", err)
		}
		p.ticket = ticket
	}
	return Auth{
		Token: p.ticket.Token,
		Sign:  p.ticket.Sign,
		Cuit:  p.cuit,
	}, nil
}

// Invalidar descarta el ticket cacheado; la próxima llamada a Auth vuelve a
// loguearse. Se usa cuando AFIP devuelve un fault de token expirado.
func (p *TicketProvider) Invalidar() {
	p.mu.Lock()
	p.ticket = nil
	p.mu.Unlock()
}
