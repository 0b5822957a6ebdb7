package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Augusto140/Englife-server/internal/config"
	"github.com/Augusto140/Englife-server/internal/delivery/http/handler"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/dbtest"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres"
	"github.com/Augusto140/Englife-server/internal/infrastructure/database/postgres/models"
	"github.com/Augusto140/Englife-server/internal/middleware"
	"github.com/Augusto140/Englife-server/internal/usecase/dashboard"
	"github.com/Augusto140/Englife-server/internal/usecase/device"
	"github.com/Augusto140/Englife-server/internal/usecase/reading"
	"github.com/Augusto140/Englife-server/internal/usecase/registration"
	"github.com/Augusto140/Englife-server/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *postgres.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.NewSQLite(t)
	templates, err := web.Templates()
	require.NoError(t, err)

	locations := postgres.NewLocationRepository(db)
	devices := postgres.NewDeviceRepository(db)
	sensors := postgres.NewSensorRepository(db)
	alerts := postgres.NewAlertRepository(db)
	feeders := postgres.NewFeederRepository(db)
	thresholds := postgres.NewThresholdRepository(db)

	deviceService := device.NewService(devices)

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(middleware.DatabaseSessionMiddleware(db))
	root := router.Group("")
	handler.NewDashboardHandler(dashboard.NewService(devices, locations, sensors, alerts, config.DefaultQuery())).RegisterRoutes(root)
	handler.NewDeviceHandler(deviceService).RegisterRoutes(root)
	handler.NewReadingHandler(reading.NewService(sensors, locations, config.DefaultQuery())).RegisterRoutes(root)
	handler.NewRegistrationHandler(
		registration.NewService(locations, devices, sensors, feeders, thresholds),
		deviceService,
	).RegisterRoutes(root)

	return router, db
}

func get(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge > 0 {
			return c
		}
	}
	t.Fatalf("no flash cookie in response")
	return nil
}

func TestIndexRedirectsToDashboard(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestReadPagesRender(t *testing.T) {
	router, db := setupRouter(t)
	loc := dbtest.SeedLocation(t, db, "Galpão 1")
	dl := dbtest.SeedDatalogger(t, db, "DL-1", "AA:BB:CC:DD:EE:01", loc)
	sensor := dbtest.SeedSensor(t, db, dl, "Sonda", "top")
	dbtest.SeedReading(t, db, sensor, 23.4, time.Now().Add(-10*time.Minute))
	dbtest.SeedAlert(t, db, "Temperatura alta", false, time.Now())

	pages := map[string]string{
		"/dashboard":                     "Temperatura alta",
		"/dispositivos":                  "DL-1",
		"/alimentadores":                 "Nenhum alimentador cadastrado.",
		"/dataloggers":                   "DL-1",
		"/leituras":                      "23.40",
		"/graficos":                      "cdn.plot.ly",
		"/cadastros":                     "Nova localização",
		"/cadastros/lista":               "Sonda",
		"/cadastros/localizacoes":        "name=\"nome\"",
		"/cadastros/dispositivos":        "Galpão 1",
		"/cadastros/sensores":            "DL-1",
		"/cadastros/config-alimentador":  "alimentador_id",
		"/cadastros/limites-temperatura": "tipo_sensor",
	}
	for path, want := range pages {
		t.Run(path, func(t *testing.T) {
			w := get(router, path)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), want)
		})
	}
}

func TestChartsWithoutReadings(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/graficos")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nenhuma leitura nas últimas 24 horas.")
	assert.NotContains(t, w.Body.String(), "cdn.plot.ly")
}

func TestLiveStatsJSON(t *testing.T) {
	router, db := setupRouter(t)
	dbtest.SeedAlert(t, db, "alerta", false, time.Now())

	w := get(router, "/api/estatisticas")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 4)
	assert.Equal(t, 0.0, body["dispositivos_online"])
	assert.Equal(t, 0.0, body["total_dispositivos"])
	assert.Equal(t, 0.0, body["temperatura_media"])
	assert.Equal(t, 1.0, body["alertas_ativos"])
}

func TestSaveLocation_ValidationRedirectsBackWithNotice(t *testing.T) {
	router, _ := setupRouter(t)

	w := postForm(router, "/cadastros/localizacoes/salvar", url.Values{"descricao": {"x"}, "tipo": {"galpao"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros/localizacoes", w.Header().Get("Location"))

	page := get(router, "/cadastros/localizacoes", flashCookie(t, w))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "notice error")
	assert.Contains(t, page.Body.String(), "Erro ao cadastrar localização: Campos inválidos: nome é obrigatório")
}

func TestSaveLocation_SuccessRedirectsToIndex(t *testing.T) {
	router, db := setupRouter(t)

	w := postForm(router, "/cadastros/localizacoes/salvar", url.Values{
		"nome": {"Galpão 1"}, "descricao": {"Aviário"}, "tipo": {"galpao"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros", w.Header().Get("Location"))

	page := get(router, "/cadastros", flashCookie(t, w))
	assert.Contains(t, page.Body.String(), "notice success")
	assert.Contains(t, page.Body.String(), "Localização cadastrada com sucesso!")

	var count int64
	db.DB.Model(&models.LocationModel{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveDevice_FeederCreatesSpecialization(t *testing.T) {
	router, db := setupRouter(t)

	w := postForm(router, "/cadastros/dispositivos/salvar", url.Values{
		"nome": {"Alimentador 01"}, "descricao": {""}, "mac_address": {"aa:bb:cc:dd:ee:01"},
		"ip_address": {""}, "tipo": {"feeder"}, "modelo": {""}, "localizacao_id": {""},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros", w.Header().Get("Location"))

	var feeders, configs int64
	db.DB.Model(&models.FeederModel{}).Count(&feeders)
	db.DB.Model(&models.FeederConfigModel{}).Count(&configs)
	assert.Equal(t, int64(1), feeders)
	assert.Equal(t, int64(1), configs)

	page := get(router, "/alimentadores")
	assert.Contains(t, page.Body.String(), "Alimentador 01")
}

func TestSaveFeederConfig_CheckboxPresence(t *testing.T) {
	router, db := setupRouter(t)
	device := &models.DeviceModel{Name: "F", MacAddress: "AA:BB:CC:DD:EE:01", Type: "feeder", CreatedAt: time.Now()}
	require.NoError(t, db.DB.Create(device).Error)
	feeder := &models.FeederModel{DeviceID: device.ID}
	require.NoError(t, db.DB.Create(feeder).Error)
	id := fmt.Sprint(feeder.ID)

	w := postForm(router, "/cadastros/config-alimentador/salvar", url.Values{
		"alimentador_id": {id}, "horario_inicio": {"06:00"}, "ativa": {"1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros", w.Header().Get("Location"))

	var cfg models.FeederConfigModel
	require.NoError(t, db.DB.Where("feeder_id = ?", feeder.ID).First(&cfg).Error)
	assert.True(t, cfg.Active)

	w = postForm(router, "/cadastros/config-alimentador/salvar", url.Values{"alimentador_id": {id}})
	require.Equal(t, http.StatusFound, w.Code)
	require.NoError(t, db.DB.Where("feeder_id = ?", feeder.ID).First(&cfg).Error)
	assert.False(t, cfg.Active)

	w = postForm(router, "/cadastros/config-alimentador/salvar", url.Values{"alimentador_id": {id}, "horario_inicio": {"6h"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros/config-alimentador", w.Header().Get("Location"))
}

func TestSaveLimit_MinAboveMax(t *testing.T) {
	router, db := setupRouter(t)
	loc := dbtest.SeedLocation(t, db, "Galpão 1")

	w := postForm(router, "/cadastros/limites-temperatura/salvar", url.Values{
		"localizacao_id": {fmt.Sprint(loc)}, "tipo_sensor": {"top"}, "maximo": {"10"}, "minimo": {"20"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros/limites-temperatura", w.Header().Get("Location"))

	page := get(router, "/cadastros/limites-temperatura", flashCookie(t, w))
	assert.Contains(t, page.Body.String(), "Erro ao salvar limites: ")

	w = postForm(router, "/cadastros/limites-temperatura/salvar", url.Values{
		"localizacao_id": {fmt.Sprint(loc)}, "tipo_sensor": {"top"}, "maximo": {"30,5"}, "minimo": {"20"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros", w.Header().Get("Location"))
}

func TestExportReadings(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "/leituras/exportar?horas=12")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"leituras_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestUnavailableStore(t *testing.T) {
	router, db := setupRouter(t)
	require.NoError(t, db.Close())

	for _, path := range []string{"/dashboard", "/dispositivos", "/leituras", "/graficos", "/cadastros/lista"} {
		w := get(router, path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "Erro de conexão com o banco de dados", path)
	}

	w := get(router, "/api/estatisticas")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Erro de conexão com o banco de dados", body["error"])

	w = get(router, "/cadastros/dispositivos")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros", w.Header().Get("Location"))

	w = postForm(router, "/cadastros/localizacoes/salvar", url.Values{"nome": {"a"}, "descricao": {"b"}, "tipo": {"c"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cadastros/localizacoes", w.Header().Get("Location"))
}

func TestPopFlash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, handler.PopFlash(c))

	c.Request.AddCookie(&http.Cookie{Name: "flash", Value: url.QueryEscape("success|Tudo certo | ok")})
	notice := handler.PopFlash(c)
	require.NotNil(t, notice)
	assert.Equal(t, handler.NoticeSuccess, notice.Kind)
	assert.Equal(t, "Tudo certo | ok", notice.Message)
}

func TestSetFlash_TruncatesLongMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	long := "Erro ao cadastrar dispositivo: " + strings.Repeat("violação de restrição ", 400)
	handler.SetFlash(c, handler.NoticeError, long)

	cookie := flashCookie(t, w)
	assert.Less(t, len(cookie.String()), 4096)

	next, _ := gin.CreateTestContext(httptest.NewRecorder())
	next.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	next.Request.AddCookie(cookie)
	notice := handler.PopFlash(next)
	require.NotNil(t, notice)
	assert.Equal(t, handler.NoticeError, notice.Kind)
	assert.True(t, strings.HasPrefix(notice.Message, "Erro ao cadastrar dispositivo: violação"))
	assert.True(t, strings.HasSuffix(notice.Message, "..."))
	assert.Equal(t, 300, utf8.RuneCountInString(notice.Message))
}

func TestSetFlash_KeepsShortMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler.SetFlash(c, handler.NoticeSuccess, "Sensor cadastrado com sucesso!")

	next, _ := gin.CreateTestContext(httptest.NewRecorder())
	next.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	next.Request.AddCookie(flashCookie(t, w))
	notice := handler.PopFlash(next)
	require.NotNil(t, notice)
	assert.Equal(t, "Sensor cadastrado com sucesso!", notice.Message)
}
