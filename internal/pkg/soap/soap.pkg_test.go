package soap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billersResponse = `<?xml version="1.0" encoding="utf-8"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
	<s:Body>
		<GetBillersResponse xmlns="http://services.interswitchng.com/quicktellerservice/">
			<GetBillersResult>&lt;Response&gt;&lt;ResponseCode&gt;90000&lt;/ResponseCode&gt;&lt;/Response&gt;</GetBillersResult>
		</GetBillersResponse>
	</s:Body>
</s:Envelope>`

const faultResponse = `<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
	<s:Body>
		<s:Fault>
			<faultcode>s:Client</faultcode>
			<faultstring>The message could not be processed</faultstring>
		</s:Fault>
	</s:Body>
</s:Envelope>`

type recorded struct {
	action      string
	contentType string
	body        string
}

func newServer(t *testing.T, status int, response string, rec *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if _, ok := r.URL.Query()["wsdl"]; !ok {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(`<wsdl:definitions/>`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		if rec != nil {
			rec.action = r.Header.Get("SOAPAction")
			rec.contentType = r.Header.Get("Content-Type")
			rec.body = string(body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := Dial(context.Background(), &Config{Endpoint: srv.URL + "/QuickTeller.svc?wsdl"})
	require.NoError(t, err)
	return client
}

func TestDial_ProbesWSDL(t *testing.T) {
	srv := newServer(t, http.StatusOK, billersResponse, nil)
	client := dial(t, srv)
	assert.Equal(t, srv.URL+"/QuickTeller.svc", client.serviceURL)
	assert.Equal(t, DefaultNamespace, client.namespace)
	assert.Equal(t, "http://services.interswitchng.com/quicktellerservice/IQuickTellerService/", client.actionPrefix)
}

func TestDial_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Dial(context.Background(), &Config{Endpoint: srv.URL})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestDial_InvalidEndpoint(t *testing.T) {
	_, err := Dial(context.Background(), &Config{Endpoint: "not a url"})
	assert.Error(t, err)
}

func TestCall_Success(t *testing.T) {
	rec := &recorded{}
	srv := newServer(t, http.StatusOK, billersResponse, rec)
	client := dial(t, srv)

	params := "<![CDATA[<SearchCriteria><TerminalId>3FTL0001</TerminalId></SearchCriteria>]]>"
	result, err := client.Call(context.Background(), "GetBillers", &params)
	require.NoError(t, err)

	assert.Equal(t, "<Response><ResponseCode>90000</ResponseCode></Response>", result["GetBillersResult"])
	assert.Equal(t, `"http://services.interswitchng.com/quicktellerservice/IQuickTellerService/GetBillers"`, rec.action)
	assert.Equal(t, "text/xml; charset=utf-8", rec.contentType)
	assert.Contains(t, rec.body, `<GetBillers xmlns="http://services.interswitchng.com/quicktellerservice/">`)
	assert.Contains(t, rec.body, "<xmlParams>"+params+"</xmlParams>")
}

func TestCall_WithoutParams(t *testing.T) {
	rec := &recorded{}
	srv := newServer(t, http.StatusOK, `<Envelope><Body><GetLatestBillersResponse>`+
		`<GetLatestBillersResult><![CDATA[<Response><ResponseCode>90000</ResponseCode></Response>]]></GetLatestBillersResult>`+
		`</GetLatestBillersResponse></Body></Envelope>`, rec)
	client := dial(t, srv)

	result, err := client.Call(context.Background(), "GetLatestBillers", nil)
	require.NoError(t, err)
	assert.Equal(t, "<Response><ResponseCode>90000</ResponseCode></Response>", result["GetLatestBillersResult"])
	assert.NotContains(t, rec.body, "xmlParams")
}

func TestCall_Fault(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, faultResponse, nil)
	client := dial(t, srv)

	_, err := client.Call(context.Background(), "GetBillers", nil)

	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "s:Client", fault.Code)
	assert.Equal(t, "The message could not be processed", fault.String)
}

func TestCall_Non200(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "Bad Gateway", nil)
	client := dial(t, srv)

	_, err := client.Call(context.Background(), "GetBillers", nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "Bad Gateway", httpErr.Body)
}

func TestCall_InvalidXML(t *testing.T) {
	srv := newServer(t, http.StatusOK, "not-xml-response", nil)
	client := dial(t, srv)

	_, err := client.Call(context.Background(), "GetBillers", nil)
	assert.Error(t, err)
}

func TestCall_MissingOperationResponse(t *testing.T) {
	srv := newServer(t, http.StatusOK, `<Envelope><Body><OtherResponse/></Body></Envelope>`, nil)
	client := dial(t, srv)

	_, err := client.Call(context.Background(), "GetBillers", nil)
	assert.ErrorContains(t, err, "GetBillersResponse")
}

func TestCall_ContextCanceled(t *testing.T) {
	srv := newServer(t, http.StatusOK, billersResponse, nil)
	client := dial(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Call(ctx, "GetBillers", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
