package seed

import (
	"github.com/bodecoin/bodecoin-services/api/internal/public/domain"
)

// SampleBusinesses returns the deterministic starter catalog. The seeder
// inserts it into Mongo and the server can serve it directly when running
// without a populated database.
func SampleBusinesses() []domain.Business {
	return []domain.Business{
		{
			ID:          "seed-lomiteria-el-guapo",
			Name:        "Lomitería El Guapo",
			Category:    "Gastronomía",
			Description: "Lomitos, hamburguesas y empanadas al paso, con delivery propio en todo el microcentro.",
			Address:     "Av. Mcal. López 1450",
			Department:  "Asunción (Distrito Capital)",
			City:        "Asunción",
			Phone:       "+595 21 555 123",
			WhatsApp:    "+595 981 555 123",
			Rating:      4.7,
			Reviews:     86,
			ImageURL:    "https://picsum.photos/seed/el-guapo/640/480",
			Verified:    true,
			Tags:        []string{"lomito", "delivery", "24hs"},
			Hours: domain.WeeklyHours{
				"dom": {Open: "18:00", Close: "23:30"},
				"seg": {Closed: true},
				"ter": {Open: "11:00", Close: "23:30"},
				"qua": {Open: "11:00", Close: "23:30"},
				"qui": {Open: "11:00", Close: "23:30"},
				"sex": {Open: "11:00", Close: "23:59"},
				"sab": {Open: "11:00", Close: "23:59"},
			},
			Coordinates: &domain.Coordinates{Lat: -25.2968, Lng: -57.6122},
			Status:      domain.StatusActive,
		},
		{
			ID:          "seed-farmacia-santa-clara",
			Name:        "Farmacia Santa Clara",
			Category:    "Salud y Farmacias",
			Description: "Farmacia de turno con perfumería, atención las 24 horas y entrega a domicilio.",
			Address:     "Ruta Py 02 km 20",
			Department:  "Central",
			City:        "San Lorenzo",
			Phone:       "+595 21 588 900",
			WhatsApp:    "+595 982 588 900",
			Rating:      4.5,
			Reviews:     41,
			ImageURL:    "https://picsum.photos/seed/santa-clara/640/480",
			Verified:    true,
			Tags:        []string{"farmacia", "24hs", "delivery"},
			Hours:       allWeek("00:00", "23:59"),
			Coordinates: &domain.Coordinates{Lat: -25.3432, Lng: -57.5085},
			Status:      domain.StatusActive,
		},
		{
			ID:          "seed-hotel-costa-del-lago",
			Name:        "Hotel Costa del Lago",
			Category:    "Hotelería y Turismo",
			Description: "Hotel boutique frente al lago Ypacaraí, con piscina, desayuno incluido y salón de eventos.",
			Address:     "Av. Costanera y Tte. Rojas Silva",
			Department:  "Central",
			City:        "Areguá",
			Phone:       "+595 291 432 100",
			WhatsApp:    "+595 983 432 100",
			Email:       "reservas@costadellago.com.py",
			Website:     "https://costadellago.com.py",
			Rating:      4.8,
			Reviews:     123,
			ImageURL:    "https://picsum.photos/seed/costa-del-lago/640/480",
			Verified:    true,
			Tags:        []string{"hotel", "piscina", "eventos"},
			Hours:       allWeek("07:00", "22:00"),
			Coordinates: &domain.Coordinates{Lat: -25.2921, Lng: -57.3848},
			Status:      domain.StatusActive,
		},
		{
			ID:          "seed-taller-don-ramon",
			Name:        "Taller Mecánico Don Ramón",
			Category:    "Automotriz",
			Description: "Mecánica ligera, electricidad del automóvil y gomería. Presupuesto sin costo.",
			Address:     "Av. Irrazábal c/ Ruta 6",
			Department:  "Itapúa",
			City:        "Encarnación",
			Phone:       "+595 71 204 555",
			WhatsApp:    "+595 985 204 555",
			Rating:      4.3,
			Reviews:     28,
			ImageURL:    "https://picsum.photos/seed/don-ramon/640/480",
			Tags:        []string{"mecánica", "gomería"},
			Hours: domain.WeeklyHours{
				"dom": {Closed: true},
				"seg": {Open: "07:30", Close: "17:30"},
				"ter": {Open: "07:30", Close: "17:30"},
				"qua": {Open: "07:30", Close: "17:30"},
				"qui": {Open: "07:30", Close: "17:30"},
				"sex": {Open: "07:30", Close: "17:30"},
				"sab": {Open: "08:00", Close: "12:00"},
			},
			Coordinates: &domain.Coordinates{Lat: -27.3306, Lng: -55.8667},
			Status:      domain.StatusActive,
		},
		{
			ID:          "seed-tecnocentro-cde",
			Name:        "TecnoCentro CDE",
			Category:    "Tecnología",
			Description: "Venta y servicio técnico de notebooks, celulares y accesorios. Garantía escrita.",
			Address:     "Av. San Blas km 4",
			Department:  "Alto Paraná",
			City:        "Ciudad del Este",
			Phone:       "+595 61 570 222",
			WhatsApp:    "+595 984 570 222",
			Website:     "https://tecnocentro.com.py",
			Rating:      4.6,
			Reviews:     67,
			ImageURL:    "https://picsum.photos/seed/tecnocentro/640/480",
			Verified:    true,
			Tags:        []string{"notebooks", "celulares", "servicio técnico"},
			Hours: domain.WeeklyHours{
				"dom": {Closed: true},
				"seg": {Open: "08:00", Close: "18:00"},
				"ter": {Open: "08:00", Close: "18:00"},
				"qua": {Open: "08:00", Close: "18:00"},
				"qui": {Open: "08:00", Close: "18:00"},
				"sex": {Open: "08:00", Close: "18:00"},
				"sab": {Open: "08:00", Close: "13:00"},
			},
			Coordinates: &domain.Coordinates{Lat: -25.5097, Lng: -54.6486},
			Status:      domain.StatusActive,
		},
		{
			ID:          "seed-academia-arandu",
			Name:        "Academia Arandú",
			Category:    "Educación",
			Description: "Cursos de idiomas, informática y refuerzo escolar para todas las edades.",
			Address:     "Gral. Díaz 980",
			Department:  "Guairá",
			City:        "Villarrica",
			Phone:       "+595 541 42 777",
			WhatsApp:    "+595 986 427 770",
			Email:       "info@arandu.edu.py",
			Rating:      4.4,
			Reviews:     19,
			ImageURL:    "https://picsum.photos/seed/arandu/640/480",
			Tags:        []string{"idiomas", "informática"},
			Hours: domain.WeeklyHours{
				"dom": {Closed: true},
				"seg": {Open: "08:00", Close: "20:00"},
				"ter": {Open: "08:00", Close: "20:00"},
				"qua": {Open: "08:00", Close: "20:00"},
				"qui": {Open: "08:00", Close: "20:00"},
				"sex": {Open: "08:00", Close: "20:00"},
				"sab": {Open: "08:00", Close: "12:00"},
			},
			Coordinates: &domain.Coordinates{Lat: -25.7817, Lng: -56.4444},
			Status:      domain.StatusActive,
		},
	}
}

func allWeek(open, close string) domain.WeeklyHours {
	hours := domain.WeeklyHours{}
	for _, day := range []string{"dom", "seg", "ter", "qua", "qui", "sex", "sab"} {
		hours[day] = domain.DaySchedule{Open: open, Close: close}
	}
	return hours
}
