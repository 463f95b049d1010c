package dto

import (
	"mediconnect/internal/domains/doctor/model"
	"mediconnect/shared"
	"strings"
)

type DoctorResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	RoomLocation   string `json:"room_location"`
	IsAvailable    bool   `json:"is_available"`
}

func (r *DoctorResponse) FromModel(m model.Doctor) {
	r.ID = m.ID
	r.Name = m.Name
	r.Specialization = string(m.Specialization)
	r.RoomLocation = m.RoomLocation
	r.IsAvailable = m.Bookable()
}

type GetDoctorsResponse struct {
	Doctors   []DoctorResponse `json:"doctors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetDoctorsResponse) FromModels(models []model.Doctor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Doctors = make([]DoctorResponse, 0, len(models))

	for _, m := range models {
		var res DoctorResponse

		res.FromModel(m)
		r.Doctors = append(r.Doctors, res)
	}
}

type SpecializationResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func SpecializationsResponse() []SpecializationResponse {
	res := make([]SpecializationResponse, 0, len(model.Specializations))

	for _, s := range model.Specializations {
		value := string(s)
		res = append(res, SpecializationResponse{
			Value: value,
			Label: strings.ToUpper(value[:1]) + value[1:],
		})
	}

	return res
}
