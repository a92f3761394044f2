package main

import (
	"context"
	"time"

	basesvc "github.com/nadiag01/apre/internal/api/base/service"
	reportmodels "github.com/nadiag01/apre/internal/api/report/models"
	"github.com/nadiag01/apre/internal/global"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/nadiag01/apre/internal/utility"
)

// InitDefaultData seed dữ liệu mẫu cho các collection báo cáo khi bật INITMODE.
// Collection đã có dữ liệu thì giữ nguyên.
func InitDefaultData() {
	log := logger.GetAppLogger()
	if !global.MongoDB_ServerConfig.InitMode {
		log.Debug("INITMODE off, skip default data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Seed lỗi (kể cả panic) không chặn khởi động server
	utility.GoProtect(func() {
		sales := basesvc.NewBaseServiceMongo[reportmodels.Sale](mustCollection(global.MongoDB_ColNames.Sales))
		if err := seed[reportmodels.Sale](ctx, sales, defaultSales()); err != nil {
			log.WithError(err).Warn("Failed to seed sales")
		}
	})
	utility.GoProtect(func() {
		agents := basesvc.NewBaseServiceMongo[reportmodels.AgentPerformance](mustCollection(global.MongoDB_ColNames.AgentPerformance))
		if err := seed[reportmodels.AgentPerformance](ctx, agents, defaultAgentPerformance()); err != nil {
			log.WithError(err).Warn("Failed to seed agent performance")
		}
	})

	log.Info("InitDefaultData completed")
}

func seed[T any](ctx context.Context, svc basesvc.BaseServiceMongo[T], data []T) error {
	count, err := svc.CountDocuments(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	n, err := svc.InsertMany(ctx, data)
	if err != nil {
		return err
	}
	logger.WithModule("init").Infof("Seeded %d documents", n)
	return nil
}

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func defaultSales() []reportmodels.Sale {
	return []reportmodels.Sale{
		{Date: day("2023-01-15"), Region: "North", Product: "Laptop", Category: "Electronics", Customer: "Acme Corp", Salesperson: "James Brown", Channel: "online", Amount: 1200},
		{Date: day("2023-01-20"), Region: "North", Product: "Headphones", Category: "Accessories", Customer: "Globex", Salesperson: "Linda Smith", Channel: "retail", Amount: 150},
		{Date: day("2023-02-03"), Region: "South", Product: "Smartphone", Category: "Electronics", Customer: "Initech", Salesperson: "Maria Garcia", Channel: "online", Amount: 800},
		{Date: day("2023-02-11"), Region: "South", Product: "Desk Chair", Category: "Furniture", Customer: "Umbrella", Salesperson: "Maria Garcia", Channel: "wholesale", Amount: 300},
		{Date: day("2023-03-07"), Region: "East", Product: "Monitor", Category: "Electronics", Customer: "Stark Industries", Salesperson: "Robert Lee", Channel: "partner", Amount: 450},
		{Date: day("2023-03-18"), Region: "West", Product: "Keyboard", Category: "Accessories", Customer: "Wayne Enterprises", Salesperson: "Susan Clark", Channel: "online", Amount: 90},
		{Date: day("2023-04-02"), Region: "West", Product: "Standing Desk", Category: "Furniture", Customer: "Hooli", Salesperson: "Susan Clark", Channel: "retail", Amount: 650},
	}
}

func defaultAgentPerformance() []reportmodels.AgentPerformance {
	return []reportmodels.AgentPerformance{
		{Date: day("2024-08-01"), AgentID: 1000, Region: "North", CallDuration: 120, ResolutionTime: 90, CustomerFeedback: "Satisfied"},
		{Date: day("2024-08-01"), AgentID: 1001, Region: "South", CallDuration: 95, ResolutionTime: 70, CustomerFeedback: "Neutral"},
		{Date: day("2024-08-03"), AgentID: 1000, Region: "North", CallDuration: 80, ResolutionTime: 60, CustomerFeedback: "Satisfied"},
		{Date: day("2024-08-05"), AgentID: 1002, Region: "East", CallDuration: 150, ResolutionTime: 140, CustomerFeedback: "Dissatisfied"},
		{Date: day("2024-08-07"), AgentID: 1001, Region: "South", CallDuration: 60, ResolutionTime: 45, CustomerFeedback: "Satisfied"},
	}
}
