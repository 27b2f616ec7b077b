package api

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"ChurnScope/internal/domain/models"
	xhttp "ChurnScope/pkg/http"

	"github.com/creasty/defaults"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex       = "index.html"
	pageUnavailable = "unavailable.html"
)

// Renderer renders the dashboard pages for echo.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money":   formatMoney,
		"percent": formatPercent,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// formView carries the form inputs as the user typed them so a failed
// submission re-renders with its values intact.
type formView struct {
	Age             string
	Gender          string
	Country         string
	CreditScore     string
	Balance         string
	Tenure          string
	NumOfProducts   string
	HasCreditCard   bool
	IsActiveMember  bool
	EstimatedSalary string
}

type pageView struct {
	Model     models.ModelInfo
	Countries []models.Country
	Genders   []models.Gender
	Form      formView
	Result    *models.PredictionResult
	Record    *models.CustomerRecord
	Errors    []xhttp.ValidationError
}

type unavailableView struct {
	Source string
	Error  string
}

func newPageView(info models.ModelInfo, form formView) pageView {
	return pageView{
		Model:     info,
		Countries: models.Countries,
		Genders:   []models.Gender{models.GenderMale, models.GenderFemale},
		Form:      form,
	}
}

func formFromRecord(r models.CustomerRecord) formView {
	return formView{
		Age:             strconv.Itoa(r.Age),
		Gender:          string(r.Gender),
		Country:         string(r.Country),
		CreditScore:     strconv.Itoa(r.CreditScore),
		Balance:         decimal.NewFromFloat(r.Balance).StringFixed(2),
		Tenure:          strconv.Itoa(r.Tenure),
		NumOfProducts:   strconv.Itoa(r.NumOfProducts),
		HasCreditCard:   r.HasCreditCard,
		IsActiveMember:  r.IsActiveMember,
		EstimatedSalary: decimal.NewFromFloat(r.EstimatedSalary).StringFixed(2),
	}
}

func formFromRequest(c echo.Context) formView {
	flag := func(k string) bool {
		v, _ := strconv.ParseBool(c.FormValue(k))
		return v
	}
	return formView{
		Age:             c.FormValue("age"),
		Gender:          c.FormValue("gender"),
		Country:         c.FormValue("country"),
		CreditScore:     c.FormValue("credit_score"),
		Balance:         c.FormValue("balance"),
		Tenure:          c.FormValue("tenure"),
		NumOfProducts:   c.FormValue("num_of_products"),
		HasCreditCard:   flag("has_credit_card"),
		IsActiveMember:  flag("is_active_member"),
		EstimatedSalary: c.FormValue("estimated_salary"),
	}
}

// defaultRecord is what the form shows before the first submission.
func defaultRecord() models.CustomerRecord {
	r := models.CustomerRecord{}
	_ = defaults.Set(&r)
	return r
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatPercent(p float64) string {
	return decimal.NewFromFloat(p).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
