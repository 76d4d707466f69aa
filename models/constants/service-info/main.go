package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "VarSift Filter Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the VarSift variant filtering API!"
	SERVICE_DESCRIPTION ServiceInfo = "Filter engine and service for VCF variant streams."
	SERVICE_CONTACT     ServiceInfo = "mailto:ops@varsift.io"

	SERVICE_ARTIFACT    ServiceInfo = "varsift"
	SERVICE_VERSION     ServiceInfo = "0.0.1"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("io.varsift:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
