package repository

import (
	amenityRepo "yadori/database/repository/amenity"
	tourismRepo "yadori/database/repository/tourism"
)

// Re-export the TourismRepository interface and constructor.
type TourismRepository = tourismRepo.TourismRepository

var NewMongoTourismRepo = tourismRepo.NewMongoTourismRepo

// Re-export the AmenityRepository interface and constructor.
type AmenityRepository = amenityRepo.AmenityRepository

var NewMongoAmenityRepo = amenityRepo.NewMongoAmenityRepo
