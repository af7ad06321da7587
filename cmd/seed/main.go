// Command seed loads demo trucks, drivers, trips and loads through the HTTP API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/tripsheet/internal/auth"
	"github.com/ukydev/tripsheet/internal/models"
	"github.com/ukydev/tripsheet/internal/service"
)

var routes = [][2]string{
	{"Chennai", "Bengaluru"},
	{"Coimbatore", "Kochi"},
	{"Madurai", "Hyderabad"},
	{"Salem", "Pune"},
	{"Tiruppur", "Mumbai"},
	{"Hosur", "Vijayawada"},
	{"Trichy", "Mangaluru"},
}

var transporters = []string{"Sri Balaji Roadways", "KPN Logistics", "VRL Cargo", "Murugan Transport"}

var driverNames = []string{"Murugan", "Senthil", "Rajesh", "Karthik", "Arun", "Prakash", "Vignesh", "Suresh"}

// seeder posts demo records to the API.
type seeder struct {
	apiURL    string
	authToken string
	client    *http.Client
	rng       *rand.Rand
	start     time.Time
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (s *seeder) post(path string, body interface{}) (string, error) {
	return s.send(http.MethodPost, path, body)
}

// send writes body as JSON and decodes the id of the record in the response.
func (s *seeder) send(method, path string, body interface{}) (string, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	req, err := http.NewRequest(method, s.apiURL+path, bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return "", fmt.Errorf("%s failed with status %d: %s", path, resp.StatusCode, env.Error)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return "", fmt.Errorf("invalid %s response: %w", path, err)
	}
	return created.ID, nil
}

func (s *seeder) pick(options []string) string {
	return options[s.rng.Intn(len(options))]
}

func dateString(t time.Time) *string {
	d := models.FormatDate(t)
	return &d
}

func (s *seeder) createTruck(i int) (string, error) {
	in := service.TruckInput{
		TruckNo:         fmt.Sprintf("TN%02d%s%04d", 10+s.rng.Intn(80), string(rune('A'+i%26))+"B", 1000+s.rng.Intn(9000)),
		FCExpiry:        dateString(s.start.AddDate(0, 1+s.rng.Intn(12), 0)),
		InsuranceExpiry: dateString(s.start.AddDate(0, s.rng.Intn(6), s.rng.Intn(28))),
		NPExpiry:        dateString(s.start.AddDate(1, 0, 0)),
	}
	id, err := s.post("/trucks", in)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"truck_id": id, "truck_no": in.TruckNo}).Info("Created truck")
	return id, nil
}

func (s *seeder) createDriver() (string, error) {
	in := service.DriverInput{
		Name:      s.pick(driverNames),
		Phone:     fmt.Sprintf("9%09d", s.rng.Intn(1000000000)),
		LicenseNo: fmt.Sprintf("TN%02d%011d", 10+s.rng.Intn(80), s.rng.Int63n(100000000000)),
	}
	id, err := s.post("/drivers", in)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"driver_id": id, "name": in.Name}).Info("Created driver")
	return id, nil
}

// seedTrips creates back-to-back trips for one truck. Every trip but the last is completed.
func (s *seeder) seedTrips(truckID, driverID string, count int) (int, error) {
	created := 0
	tripStart := s.start
	odometer := float64(50000 + s.rng.Intn(100000))
	for k := 0; k < count; k++ {
		days := 3 + s.rng.Intn(6)
		km := float64(400 + s.rng.Intn(1400))
		in := service.TripInput{
			TruckID:   truckID,
			Driver1ID: driverID,
			StartDate: models.FormatDate(tripStart),
			StartKM:   odometer,
		}
		last := k == count-1
		if !last {
			in.EndDate = dateString(tripStart.AddDate(0, 0, days))
			in.EndKM = odometer + km
			in.DieselLiters = km / 4
			in.DieselAmount = in.DieselLiters * 92
			in.Status = models.TripCompleted
		}
		tripID, err := s.post("/trips", in)
		if err != nil {
			return created, err
		}
		created++

		loads := 1 + s.rng.Intn(2)
		var freight float64
		for l := 0; l < loads; l++ {
			route := routes[s.rng.Intn(len(routes))]
			load := service.LoadInput{
				LoadingDate:   dateString(tripStart.AddDate(0, 0, l)),
				FromLocation:  route[0],
				ToLocation:    route[1],
				Transporter:   s.pick(transporters),
				FreightAmount: float64(15000 + 1000*s.rng.Intn(60)),
				PayTerm:       models.PayTermAdvance,
			}
			load.AdvanceAmount = float64(int(load.FreightAmount*0.4/1000)) * 1000
			if s.rng.Intn(3) == 0 {
				load.PayTerm = models.PayTermToPay
			}
			if _, err := s.post("/trips/"+tripID+"/loads", load); err != nil {
				return created, err
			}
			freight += load.FreightAmount
		}

		if !last {
			sheet := service.ExpenseSheet{
				DieselLiters:     in.DieselLiters,
				DieselAmount:     in.DieselAmount,
				SalaryPercentage: 8,
				LoadingAmount:    float64(500 * loads),
				UnloadingAmount:  float64(500 * loads),
				FastagAmount:     km * 2.5,
			}
			if _, err := s.send(http.MethodPut, "/trips/"+tripID+"/expense-sheet", sheet); err != nil {
				return created, err
			}
		}

		log.WithFields(log.Fields{
			"trip_id":    tripID,
			"truck_id":   truckID,
			"start_date": in.StartDate,
			"loads":      loads,
			"freight":    freight,
		}).Info("Created trip")

		odometer += km
		tripStart = tripStart.AddDate(0, 0, days+1+s.rng.Intn(3))
	}
	return created, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// tokenFromEnv returns SEED_AUTH_TOKEN, or mints one when only JWT_SECRET is set.
func tokenFromEnv() (string, error) {
	if token := os.Getenv("SEED_AUTH_TOKEN"); token != "" {
		return token, nil
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", nil
	}
	svc, err := auth.NewService(secret, time.Hour)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken("seed", "seed@tripsheet.local", "seed")
}

func run(s *seeder, fleetSize, tripsPerTruck int) (int, error) {
	trips := 0
	for i := 0; i < fleetSize; i++ {
		truckID, err := s.createTruck(i)
		if err != nil {
			return trips, err
		}
		driverID, err := s.createDriver()
		if err != nil {
			return trips, err
		}
		n, err := s.seedTrips(truckID, driverID, tripsPerTruck)
		trips += n
		if err != nil {
			return trips, err
		}
	}
	return trips, nil
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	fleetSize := envInt("FLEET_SIZE", 5)
	tripsPerTruck := envInt("TRIPS_PER_TRUCK", 3)

	token, err := tokenFromEnv()
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare auth token")
	}

	s := &seeder{
		apiURL:    apiURL,
		authToken: token,
		client:    &http.Client{Timeout: 10 * time.Second},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		start:     models.DateOnly(time.Now().AddDate(0, -2, 0)),
	}

	log.WithFields(log.Fields{
		"fleet_size":      fleetSize,
		"trips_per_truck": tripsPerTruck,
		"api_url":         apiURL,
	}).Info("Seeding demo data")

	trips, err := run(s, fleetSize, tripsPerTruck)
	if err != nil {
		log.WithError(err).WithField("trips_created", trips).Fatal("Seeding stopped")
	}
	log.WithField("trips_created", trips).Info("Seeding completed")
}
