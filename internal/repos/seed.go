package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"carshop/internal/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func vnd(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func seedIfEmpty(db *sqlx.DB) error {
	steps := []struct {
		table string
		seed  func(tx *sqlx.Tx) error
	}{
		{"categories", seedCategories},
		{"brands", seedBrands},
		{"cars", seedCars},
		{"users", seedUsers},
		{"orders", seedOrders},
	}
	for _, s := range steps {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM `+s.table); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		log.Printf("[seed] inserting demo %s", s.table)
		tx, err := db.Beginx()
		if err != nil {
			return err
		}
		if err := s.seed(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func seedCategories(tx *sqlx.Tx) error {
	day := ts("2024-01-01T00:00:00Z")
	cats := []domain.Category{
		{ID: "1", Name: "Sedan", Slug: "sedan", Description: "Dòng xe du lịch có 4 cửa, 4 chỗ hoặc 5 chỗ."},
		{ID: "2", Name: "SUV", Slug: "suv", Description: "Dòng xe thể thao đa dụng, gầm cao, tiện dụng cho nhiều địa hình."},
		{ID: "3", Name: "Hatchback", Slug: "hatchback", Description: "Dòng xe nhỏ gọn với cửa hậu mở lên, phù hợp di chuyển trong đô thị."},
		{ID: "4", Name: "Crossover", Slug: "crossover", Description: "Sự kết hợp giữa sedan và SUV, mang lại sự thoải mái của sedan và không gian của SUV."},
		{ID: "5", Name: "MPV", Slug: "mpv", Description: "Xe đa dụng, thường có 7 chỗ, phù hợp cho gia đình."},
	}
	for _, c := range cats {
		c.CreatedAt, c.UpdatedAt = day, day
		if _, err := tx.NamedExec(insertCategory, c); err != nil {
			return err
		}
	}
	return nil
}

func seedBrands(tx *sqlx.Tx) error {
	day := ts("2024-01-01T00:00:00Z")
	brands := []domain.Brand{
		{ID: "1", Name: "Toyota", Logo: "/images/brands/toyota-logo.png", Description: "Thương hiệu ô tô hàng đầu Nhật Bản, nổi tiếng về độ bền và tiết kiệm nhiên liệu."},
		{ID: "2", Name: "Honda", Logo: "/images/brands/honda-logo.png", Description: "Thương hiệu ô tô và xe máy Nhật Bản, được biết đến với động cơ mạnh mẽ và thiết kế thể thao."},
		{ID: "3", Name: "Hyundai", Logo: "/images/brands/hyundai-logo.png", Description: "Thương hiệu ô tô Hàn Quốc, cung cấp các mẫu xe đa dạng với thiết kế hiện đại và công nghệ tiên tiến."},
		{ID: "4", Name: "BMW", Logo: "/images/brands/bmw-logo.png", Description: "Thương hiệu xe hơi hạng sang của Đức, nổi tiếng với hiệu suất lái và công nghệ cao cấp."},
		{ID: "5", Name: "Mercedes-Benz", Logo: "/images/brands/mercedes-logo.png", Description: "Thương hiệu xe hơi hạng sang của Đức, biểu tượng của sự sang trọng và đổi mới."},
	}
	for _, b := range brands {
		b.CreatedAt, b.UpdatedAt = day, day
		if _, err := tx.NamedExec(insertBrand, b); err != nil {
			return err
		}
	}
	return nil
}

func seedCars(tx *sqlx.Tx) error {
	type row struct {
		domain.Car
		day string
	}
	auto := domain.TransmissionAutomatic
	cars := []row{
		{domain.Car{ID: "1", Name: "Toyota Camry 2024", Brand: "Toyota", Model: "Camry", Year: 2024, Price: vnd(1250000000),
			Category: "Sedan", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Trắng ngọc trai",
			Description: "Toyota Camry 2024 mới 100%, thiết kế sang trọng, động cơ mạnh mẽ, tiết kiệm nhiên liệu.",
			Features:    domain.StringList{"Hệ thống an toàn Toyota Safety Sense 2.0", "Màn hình cảm ứng 9 inch", "Camera 360 độ", "Cửa sổ trời panorama", "Ghế da cao cấp", "Điều hòa tự động 2 vùng"},
			Images:      domain.StringList{"/images/cars/toyota-camry-1.jpg", "/images/cars/toyota-camry-1.jpg", "/images/cars/toyota-camry-1.jpg"}},
			"2024-01-01T00:00:00Z"},
		{domain.Car{ID: "2", Name: "Honda Civic 2024", Brand: "Honda", Model: "Civic", Year: 2024, Price: vnd(950000000),
			Category: "Sedan", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Đen crystal",
			Description: "Honda Civic 2024 thế hệ mới, thiết kế trẻ trung, công nghệ hiện đại.",
			Features:    domain.StringList{"Honda SENSING", "Màn hình 8 inch", "Sạc không dây", "Đèn LED full", "Cruise control thích ứng", "Hệ thống âm thanh Bose"},
			Images:      domain.StringList{"/images/cars/honda-civic-1.jpg", "/images/cars/honda-civic-2.jpg", "/images/cars/honda-civic-3.jpg"}},
			"2024-01-02T00:00:00Z"},
		{domain.Car{ID: "3", Name: "Hyundai Tucson 2024", Brand: "Hyundai", Model: "Tucson", Year: 2024, Price: vnd(1100000000),
			Category: "SUV", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Xanh dương metallic",
			Description: "Hyundai Tucson 2024 SUV 5 chỗ, thiết kế mạnh mẽ, không gian rộng rãi.",
			Features:    domain.StringList{"SmartSense", "Màn hình 12.3 inch", "Hệ thống âm thanh Infinity", "Sạc không dây", "Cửa cốp điện", "Phanh tay điện tử"},
			Images:      domain.StringList{"/images/cars/hyundai-tucson-1.jpg", "/images/cars/hyundai-tucson-2.jpg", "/images/cars/hyundai-tucson-3.jpg"}},
			"2024-01-03T00:00:00Z"},
		{domain.Car{ID: "4", Name: "Mazda CX-5 2024", Brand: "Mazda", Model: "CX-5", Year: 2024, Price: vnd(999000000),
			Category: "SUV", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Đỏ Soul",
			Description: "Mazda CX-5 thiết kế Kodo đẹp mắt, trang bị công nghệ i-Activsense hiện đại.",
			Features:    domain.StringList{"i-Activsense", "Màn hình HUD", "Ghế da Nappa", "Camera 360", "Cửa sổ trời", "Gương chống chói"},
			Images:      domain.StringList{"/images/cars/mazda-cx5-1.jpg", "/images/cars/mazda-cx5-2.jpg"}},
			"2024-01-04T00:00:00Z"},
		{domain.Car{ID: "5", Name: "Kia Seltos 2024", Brand: "Kia", Model: "Seltos", Year: 2024, Price: vnd(750000000),
			Category: "SUV", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Cam ánh kim",
			Description: "Kia Seltos mới với kiểu dáng thể thao, nhiều công nghệ an toàn.",
			Features:    domain.StringList{"Cruise control", "Camera lùi", "Màn hình 10.25 inch", "Apple CarPlay", "ABS", "ESP"},
			Images:      domain.StringList{"/images/cars/kia-seltos-1.jpg", "/images/cars/kia-seltos-2.jpg"}},
			"2024-01-05T00:00:00Z"},
		{domain.Car{ID: "6", Name: "Mercedes-Benz C200 2024", Brand: "Mercedes-Benz", Model: "C200", Year: 2024, Price: vnd(1750000000),
			Category: "Sedan", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Trắng Polar",
			Description: "C200 sang trọng, động cơ mạnh mẽ, trải nghiệm đẳng cấp từ Mercedes.",
			Features:    domain.StringList{"LED Multibeam", `MBUX 11.9"`, "Camera 360", "Ghế massage", "Cruise Control", "Hệ thống Pre-Safe"},
			Images:      domain.StringList{"/images/cars/mercedes-c200-1.jpg"}},
			"2024-01-06T00:00:00Z"},
		{domain.Car{ID: "7", Name: "BMW X3 2024", Brand: "BMW", Model: "X3", Year: 2024, Price: vnd(2390000000),
			Category: "SUV", Fuel: domain.FuelGasoline, Transmission: auto, Color: "Xanh dương đậm",
			Description: "BMW X3 sang trọng, động cơ mạnh mẽ, phong cách thể thao đậm chất Đức.",
			Features:    domain.StringList{"iDrive 8.0", "Mâm 19 inch", "HUD", "Ghế thể thao", "Cửa sổ trời", "Hệ thống hỗ trợ lái"},
			Images:      domain.StringList{"/images/cars/bmw-x3-1.jpg"}},
			"2024-01-07T00:00:00Z"},
		{domain.Car{ID: "8", Name: "Ford Everest Titanium 2024", Brand: "Ford", Model: "Everest", Year: 2024, Price: vnd(1390000000),
			Category: "SUV", Fuel: domain.FuelDiesel, Transmission: auto, Color: "Xám Meteor",
			Description: "Ford Everest mới mạnh mẽ, tiện nghi với nhiều tính năng hiện đại.",
			Features:    domain.StringList{"Cruise Control", "Camera 360", "Màn hình 12 inch", "Phanh tay điện tử", "Cửa hậu điện"},
			Images:      domain.StringList{"/images/cars/ford-everest-1.jpg"}},
			"2024-01-08T00:00:00Z"},
		{domain.Car{ID: "9", Name: "VinFast VF 8 Plus 2024", Brand: "VinFast", Model: "VF 8", Year: 2024, Price: vnd(1250000000),
			Category: "SUV", Fuel: domain.FuelElectric, Transmission: auto, Color: "Xanh thiên thanh",
			Description: "Xe điện VF 8 Plus, công nghệ cao, trải nghiệm lái hiện đại.",
			Features:    domain.StringList{"ADAS", "Màn hình cảm ứng 15.6 inch", "Không gian rộng", "Tự lái cấp 2+", "Cốp điện"},
			Images:      domain.StringList{"/images/cars/vinfast-vf8-1.jpg"}},
			"2024-01-09T00:00:00Z"},
		{domain.Car{ID: "10", Name: "Lexus RX500h 2024", Brand: "Lexus", Model: "RX500h", Year: 2024, Price: vnd(4590000000),
			Category: "SUV", Fuel: domain.FuelHybrid, Transmission: auto, Color: "Đen bóng",
			Description: "Lexus RX thế hệ mới với công nghệ hybrid tiết kiệm và vận hành êm ái.",
			Features:    domain.StringList{"Hệ thống hybrid", "Màn hình 14 inch", "Cửa sổ trời toàn cảnh", "Mark Levinson Audio", "Camera 360"},
			Images:      domain.StringList{"/images/cars/lexus-rx-1.jpg"}},
			"2024-01-10T00:00:00Z"},
	}
	for _, r := range cars {
		c := r.Car
		c.Status = domain.CarAvailable
		c.CreatedAt, c.UpdatedAt = ts(r.day), ts(r.day)
		if _, err := tx.NamedExec(insertCar, c); err != nil {
			return err
		}
	}
	return nil
}

// SeedPasswords are the demo logins; they are only ever stored hashed.
var SeedPasswords = map[string]string{
	"admin@carshop.com":    "admin123",
	"user@gmail.com":       "user123",
	"john.doe@email.com":   "password123",
	"lethanh@email.com":    "user1234",
	"phamhuong@email.com":  "user5678",
	"nguyentung@email.com": "userabcd",
	"tranmai@email.com":    "maitrans@2024",
	"dangquang@email.com":  "dangquang123",
}

func seedUsers(tx *sqlx.Tx) error {
	type row struct {
		domain.User
		day string
	}
	users := []row{
		{domain.User{ID: "1", Email: "admin@carshop.com", FullName: "Nguyễn Văn Admin", Role: domain.RoleAdmin,
			Avatar: "/images/avatars/admin.jpg", Phone: "0901234567", Address: "123 Đường ABC, Quận 1, TP.HCM"}, "2024-01-01T00:00:00Z"},
		{domain.User{ID: "2", Email: "user@gmail.com", FullName: "Nguyễn Văn A", Role: domain.RoleUser,
			Avatar: "/images/avatars/user.jpg", Phone: "0907654321", Address: "San Jose, California"}, "2024-01-15T00:00:00Z"},
		{domain.User{ID: "3", Email: "john.doe@email.com", FullName: "John Doe", Role: domain.RoleUser,
			Avatar: "/images/avatars/user0.jpg", Phone: "0909876543", Address: "789 Street ABC, District 3, HCMC"}, "2024-02-01T00:00:00Z"},
		{domain.User{ID: "4", Email: "lethanh@email.com", FullName: "Lê Thành", Role: domain.RoleUser,
			Avatar: "/images/avatars/user1.jpg", Phone: "0912345678", Address: "12 Nguyễn Huệ, Quận 1, TP.HCM"}, "2024-02-10T00:00:00Z"},
		{domain.User{ID: "5", Email: "phamhuong@email.com", FullName: "Phạm Thị Hương", Role: domain.RoleUser,
			Avatar: "/images/avatars/user2.jpg", Phone: "0923456789", Address: "34 Lê Duẩn, Quận 1, TP.HCM"}, "2024-02-12T00:00:00Z"},
		{domain.User{ID: "6", Email: "nguyentung@email.com", FullName: "Nguyễn Minh Tùng", Role: domain.RoleUser,
			Avatar: "/images/avatars/user3.jpg", Phone: "0934567890", Address: "56 Hai Bà Trưng, Quận 3, TP.HCM"}, "2024-02-15T00:00:00Z"},
		{domain.User{ID: "7", Email: "tranmai@email.com", FullName: "Trần Mai", Role: domain.RoleUser,
			Avatar: "/images/avatars/user4.jpg", Phone: "0945678901", Address: "78 Điện Biên Phủ, Quận Bình Thạnh, TP.HCM"}, "2024-02-18T00:00:00Z"},
		{domain.User{ID: "8", Email: "dangquang@email.com", FullName: "Đặng Quang", Role: domain.RoleUser,
			Avatar: "/images/avatars/user5.jpg", Phone: "0956789012", Address: "90 Phan Xích Long, Quận Phú Nhuận, TP.HCM"}, "2024-02-20T00:00:00Z"},
	}
	for _, r := range users {
		u := r.User
		h, err := bcrypt.GenerateFromPassword([]byte(SeedPasswords[u.Email]), HashCost)
		if err != nil {
			return err
		}
		u.Hash = string(h)
		u.CreatedAt, u.UpdatedAt = ts(r.day), ts(r.day)
		if _, err := tx.NamedExec(insertUser, u); err != nil {
			return err
		}
	}
	return nil
}

func seedOrders(tx *sqlx.Tx) error {
	type cust struct{ name, email, phone string }
	var (
		a     = cust{"Nguyễn Văn A", "user@gmail.com", "0907654321"}
		john  = cust{"John Doe", "john.doe@email.com", "0909876543"}
		admin = cust{"Nguyễn Văn Admin", "admin@carshop.com", "0901234567"}
		thanh = cust{"Lê Thành", "lethanh@email.com", "0912345678"}
		huong = cust{"Phạm Thị Hương", "phamhuong@email.com", "0923456789"}
		tung  = cust{"Nguyễn Minh Tùng", "nguyentung@email.com", "0934567890"}
		mai   = cust{"Trần Mai", "tranmai@email.com", "0945678901"}
		quang = cust{"Đặng Quang", "dangquang@email.com", "0956789012"}
	)
	rows := []struct {
		id, userID, carID string
		c                 cust
		status            domain.OrderStatus
		total             int64
		notes             string
		created, updated  string
	}{
		{"1", "2", "1", a, domain.OrderPending, 1250000000, "Khách hàng muốn xem xe trực tiếp trước khi quyết định mua", "2024-01-10T00:00:00Z", "2024-01-10T00:00:00Z"},
		{"2", "3", "2", john, domain.OrderConfirmed, 950000000, "", "2024-01-15T00:00:00Z", "2024-01-16T00:00:00Z"},
		{"3", "1", "3", admin, domain.OrderCompleted, 1100000000, "", "2024-01-20T00:00:00Z", "2024-01-20T00:00:00Z"},
		{"4", "2", "4", a, domain.OrderCompleted, 2000000000, "Đã hoàn tất thanh toán và nhận xe.", "2024-02-01T10:30:00Z", "2024-02-05T15:00:00Z"},
		{"5", "2", "5", a, domain.OrderCancelled, 750000000, "Khách hàng đổi ý, không mua nữa.", "2024-03-05T09:00:00Z", "2024-03-05T10:00:00Z"},
		{"6", "3", "6", john, domain.OrderPending, 800000000, "Yêu cầu kiểm tra kỹ xe trước khi giao.", "2024-03-10T11:00:00Z", "2024-03-10T11:00:00Z"},
		{"7", "3", "7", john, domain.OrderCompleted, 1300000000, "Giao xe thành công.", "2024-03-20T14:00:00Z", "2024-03-22T10:00:00Z"},
		{"8", "4", "8", thanh, domain.OrderConfirmed, 5500000000, "Khách hàng yêu cầu lắp thêm phụ kiện.", "2024-04-01T16:00:00Z", "2024-04-02T09:00:00Z"},
		{"9", "4", "9", thanh, domain.OrderPending, 8000000000, "Đang chờ xác nhận cuối cùng về màu sắc.", "2024-04-05T10:00:00Z", "2024-04-05T10:00:00Z"},
		{"10", "5", "10", huong, domain.OrderCompleted, 9000000000, "Đã nhận xe và hài lòng.", "2024-04-10T13:00:00Z", "2024-04-15T11:00:00Z"},
		{"11", "5", "11", huong, domain.OrderCancelled, 3000000000, "Hủy vì muốn đợi phiên bản mới hơn.", "2024-04-18T08:00:00Z", "2024-04-18T09:00:00Z"},
		{"12", "6", "12", tung, domain.OrderConfirmed, 6000000000, "Sẽ đến lấy xe vào tuần tới.", "2024-05-01T10:00:00Z", "2024-05-02T10:00:00Z"},
		{"13", "6", "13", tung, domain.OrderPending, 7000000000, "Đang chờ phản hồi về tùy chọn màu sơn.", "2024-05-05T14:00:00Z", "2024-05-05T14:00:00Z"},
		{"14", "7", "14", mai, domain.OrderCompleted, 3500000000, "Khách hàng rất ưng ý với xe.", "2024-05-10T09:00:00Z", "2024-05-12T16:00:00Z"},
		{"15", "7", "15", mai, domain.OrderPending, 3000000000, "Yêu cầu lái thử thêm lần nữa.", "2024-05-15T11:00:00Z", "2024-05-15T11:00:00Z"},
		{"16", "8", "1", quang, domain.OrderConfirmed, 1250000000, "Khách hàng đã cọc.", "2024-05-20T14:00:00Z", "2024-05-21T09:00:00Z"},
		{"17", "8", "2", quang, domain.OrderPending, 950000000, "Đang xem xét thêm các lựa chọn khác.", "2024-05-25T16:00:00Z", "2024-05-25T16:00:00Z"},
	}
	for _, r := range rows {
		o := domain.Order{
			ID: r.id, UserID: r.userID, CarID: r.carID,
			CustomerName: r.c.name, CustomerEmail: r.c.email, CustomerPhone: r.c.phone,
			Status: r.status, TotalAmount: vnd(r.total), Notes: r.notes,
			CreatedAt: ts(r.created), UpdatedAt: ts(r.updated),
		}
		if _, err := tx.NamedExec(insertOrder, o); err != nil {
			return err
		}
	}
	return nil
}
