package storage

import (
	"github.com/GreaLake/checkIn/storage/database"
	"github.com/GreaLake/checkIn/storage/mq"
	"github.com/GreaLake/checkIn/storage/redis"
)

// 统一 init storage 层

func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
